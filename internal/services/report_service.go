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

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportService joins sales, purchases and chemicals into the detailed
// report. It holds no state between calls.
type ReportService struct {
	Chemicals ChemicalStore
	Sales     SaleStore
	Purchases PurchaseStore

	LowStockThreshold float64
	ExpiryWindowDays  int

	// Now is overridable in tests
	Now func() time.Time
}

func NewReportService(chemicals ChemicalStore, sales SaleStore, purchases PurchaseStore, lowStockThreshold float64, expiryWindowDays int) *ReportService {
	return &ReportService{
		Chemicals:         chemicals,
		Sales:             sales,
		Purchases:         purchases,
		LowStockThreshold: lowStockThreshold,
		ExpiryWindowDays:  expiryWindowDays,
		Now:               timeutil.Now,
	}
}

// BuildDetailedReport fetches the three collections concurrently and computes
// the report totals. Any fetch failure aborts the whole report with
// ErrReportFailed; partial reports are never returned.
func (s *ReportService) BuildDetailedReport(ctx context.Context, filter models.ReportFilter) (*models.DetailedReport, error) {
	start := time.Now()
	defer func() {
		metrics.ReportBuildDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		sales     []*models.Sale
		purchases []*models.Purchase
		chemicals []*models.Chemical
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.Sales.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("list sales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		purchases, err = s.Purchases.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("list purchases: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		chemicals, err = s.Chemicals.List(gctx)
		if err != nil {
			return fmt.Errorf("list chemicals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.ReportFailuresTotal.Inc()
		log.Printf("[Report] Failed to build detailed report: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrReportFailed, err)
	}

	return aggregate(sales, purchases, chemicals), nil
}

// aggregate computes the report totals. Sales are valued at the current
// chemical price; a sale whose chemical no longer resolves contributes 0.
func aggregate(sales []*models.Sale, purchases []*models.Purchase, chemicals []*models.Chemical) *models.DetailedReport {
	if sales == nil {
		sales = []*models.Sale{}
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}
	if chemicals == nil {
		chemicals = []*models.Chemical{}
	}

	salesValue := decimal.Zero
	received := decimal.Zero
	for _, sale := range sales {
		salesValue = salesValue.Add(decimal.NewFromFloat(sale.Quantity).Mul(decimal.NewFromFloat(sale.Chemical.Price())))
		received = received.Add(decimal.NewFromFloat(sale.PaymentAmount))
	}

	purchaseCost := decimal.Zero
	paid := decimal.Zero
	for _, p := range purchases {
		purchaseCost = purchaseCost.Add(decimal.NewFromFloat(p.Quantity).Mul(decimal.NewFromFloat(p.Price)))
		paid = paid.Add(decimal.NewFromFloat(p.PaymentAmount))
	}

	return &models.DetailedReport{
		SalesCount:           len(sales),
		TotalSalesValue:      salesValue.InexactFloat64(),
		TotalPaymentReceived: received.InexactFloat64(),
		SalesDetails:         sales,
		PurchaseCount:        len(purchases),
		TotalPurchaseCost:    purchaseCost.InexactFloat64(),
		TotalPaymentMade:     paid.InexactFloat64(),
		PurchaseDetails:      purchases,
		TotalChemicals:       len(chemicals),
		ChemicalDetails:      chemicals,
	}
}

// BuildSummary returns the detailed report together with every derived
// dashboard view computed from the same snapshot.
func (s *ReportService) BuildSummary(ctx context.Context, filter models.ReportFilter) (*models.ReportSummary, error) {
	report, err := s.BuildDetailedReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	window := time.Duration(s.expiryWindowDays()) * 24 * time.Hour
	lowStock := LowStock(report.ChemicalDetails, s.threshold())

	return &models.ReportSummary{
		Report:         report,
		TopSelling:     TopSellingChemicals(report.SalesDetails, TopSellersLimit),
		Trend:          SalesPurchaseTrend(report),
		ExpiringSoon:   ExpiringSoon(report.ChemicalDetails, now, window),
		LowStock:       lowStock,
		OutOfStock:     OutOfStockCount(report.ChemicalDetails),
		OutstandingDue: OutstandingDue(report.SalesDetails),
		GeneratedAt:    now,
	}, nil
}

func (s *ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return timeutil.Now()
}

func (s *ReportService) threshold() float64 {
	if s.LowStockThreshold > 0 {
		return s.LowStockThreshold
	}
	return config.DefaultLowStockThreshold
}

func (s *ReportService) expiryWindowDays() int {
	if s.ExpiryWindowDays > 0 {
		return s.ExpiryWindowDays
	}
	return config.DefaultExpiryWindowDays
}
