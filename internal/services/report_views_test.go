package services

import (
	"testing"
	"time"

	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"
)

func sale(name string, quantity float64) *models.Sale {
	s := &models.Sale{Quantity: quantity}
	if name != "" {
		s.Chemical = &models.ChemicalRef{Name: name}
	}
	return s
}

func TestTopSellingChemicals(t *testing.T) {
	sales := []*models.Sale{
		sale("A", 1), sale("B", 5), sale("A", 4), sale("C", 2),
		sale("D", 3), sale("E", 3), sale("F", 1), sale("", 6),
	}

	got := TopSellingChemicals(sales, TopSellersLimit)
	want := []models.TopSeller{
		{Name: "Unknown", Quantity: 6},
		{Name: "A", Quantity: 5},
		{Name: "B", Quantity: 5},
		{Name: "D", Quantity: 3},
		{Name: "E", Quantity: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("want %d sellers, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestTopSellingChemicalsFewerThanLimit(t *testing.T) {
	got := TopSellingChemicals([]*models.Sale{sale("A", 1)}, TopSellersLimit)
	if len(got) != 1 {
		t.Fatalf("want 1, got %d", len(got))
	}
	if got := TopSellingChemicals(nil, TopSellersLimit); len(got) != 0 {
		t.Errorf("no sales should give no sellers, got %+v", got)
	}
}

func TestSalesPurchaseTrend(t *testing.T) {
	price := 10.0
	ref := &models.ChemicalRef{Name: "A", UnitPrice: &price}
	report := &models.DetailedReport{
		SalesDetails: []*models.Sale{
			{Chemical: ref, Quantity: 2, SaleDate: time.Date(2026, 2, 3, 9, 0, 0, 0, timeutil.IST)},
			{Chemical: ref, Quantity: 1, SaleDate: time.Date(2026, 2, 20, 9, 0, 0, 0, timeutil.IST)},
			{Chemical: nil, Quantity: 9, SaleDate: time.Date(2026, 2, 21, 9, 0, 0, 0, timeutil.IST)},
		},
		PurchaseDetails: []*models.Purchase{
			{Quantity: 4, Price: 5, PurchaseDate: time.Date(2026, 1, 10, 9, 0, 0, 0, timeutil.IST)},
			{Quantity: 1, Price: 5, PurchaseDate: time.Date(2026, 2, 10, 9, 0, 0, 0, timeutil.IST)},
		},
	}

	got := SalesPurchaseTrend(report)
	want := []models.TrendPoint{
		{Period: "2026-01", Sales: 0, Purchases: 20, Profit: -20},
		{Period: "2026-02", Sales: 30, Purchases: 5, Profit: 25},
	}
	if len(got) != len(want) {
		t.Fatalf("want %d buckets, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestExpiringSoonBoundaries(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, timeutil.IST)
	window := 30 * 24 * time.Hour
	chems := []*models.Chemical{
		{ID: "now", ExpirationDate: ptr(now)},
		{ID: "edge", ExpirationDate: ptr(now.Add(window))},
		{ID: "late", ExpirationDate: ptr(now.AddDate(0, 0, 31))},
		{ID: "past", ExpirationDate: ptr(now.Add(-time.Second))},
		{ID: "never"},
	}

	got := ExpiringSoon(chems, now, window)
	if len(got) != 2 || got[0].ID != "now" || got[1].ID != "edge" {
		ids := []string{}
		for _, c := range got {
			ids = append(ids, c.ID)
		}
		t.Errorf("want [now edge], got %v", ids)
	}
}

func TestLowStockStrictlyBelow(t *testing.T) {
	chems := []*models.Chemical{
		{ID: "19", Quantity: 19},
		{ID: "20", Quantity: 20},
		{ID: "0", Quantity: 0},
	}
	got := LowStock(chems, 20)
	if len(got) != 2 || got[0].ID != "0" || got[1].ID != "19" {
		t.Errorf("want [0 19], got %+v", got)
	}
	if OutOfStockCount(chems) != 1 {
		t.Error("one chemical is out of stock")
	}
}

func TestOutstandingDue(t *testing.T) {
	price := 10.0
	ref := &models.ChemicalRef{UnitPrice: &price}
	sales := []*models.Sale{
		{Chemical: ref, Quantity: 2, PaymentAmount: 5, PaymentStatus: models.PaymentPending},
		{Chemical: ref, Quantity: 1, PaymentAmount: 50, PaymentStatus: models.PaymentPending},
		{Chemical: ref, Quantity: 9, PaymentAmount: 0, PaymentStatus: models.PaymentPaid},
	}
	if got := OutstandingDue(sales); got != 15 {
		t.Errorf("want 15, got %v", got)
	}
}
