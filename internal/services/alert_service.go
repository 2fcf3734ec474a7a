package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"chem-backend/internal/config"
	"chem-backend/internal/metrics"
	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"
)

// AlertService flags low-stock and soon-to-expire chemicals straight from
// the chemical store, without building a report.
type AlertService struct {
	Chemicals         ChemicalStore
	LowStockThreshold float64
	ExpiryWindowDays  int

	Now func() time.Time
}

func NewAlertService(chemicals ChemicalStore, lowStockThreshold float64, expiryWindowDays int) *AlertService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = config.DefaultLowStockThreshold
	}
	if expiryWindowDays <= 0 {
		expiryWindowDays = config.DefaultExpiryWindowDays
	}
	return &AlertService{
		Chemicals:         chemicals,
		LowStockThreshold: lowStockThreshold,
		ExpiryWindowDays:  expiryWindowDays,
		Now:               timeutil.Now,
	}
}

// EvaluateAlerts returns chemicals with quantity below the threshold and
// chemicals expiring in [now, now+window], both bounds inclusive.
func (s *AlertService) EvaluateAlerts(ctx context.Context) (*models.Alerts, error) {
	now := timeutil.Now()
	if s.Now != nil {
		now = s.Now()
	}

	lowStock, err := s.Chemicals.FindByQuantityBelow(ctx, s.LowStockThreshold)
	if err != nil {
		return nil, s.fail("low stock", err)
	}

	end := now.Add(time.Duration(s.ExpiryWindowDays) * 24 * time.Hour)
	expiring, err := s.Chemicals.FindByExpirationWindow(ctx, now, end)
	if err != nil {
		return nil, s.fail("expiring", err)
	}

	if lowStock == nil {
		lowStock = []*models.Chemical{}
	}
	if expiring == nil {
		expiring = []*models.Chemical{}
	}

	metrics.AlertEvaluationsTotal.WithLabelValues("ok").Inc()
	metrics.LowStockChemicals.Set(float64(len(lowStock)))
	metrics.ExpiringChemicals.Set(float64(len(expiring)))

	return &models.Alerts{LowStock: lowStock, Expiring: expiring}, nil
}

func (s *AlertService) fail(check string, err error) error {
	metrics.AlertEvaluationsTotal.WithLabelValues("error").Inc()
	log.Printf("[Alerts] %s check failed: %v", check, err)
	return fmt.Errorf("%w: %s: %v", ErrAlertCheckFailed, check, err)
}
