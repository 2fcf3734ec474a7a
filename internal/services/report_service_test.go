package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"
)

type reportFixture struct {
	chemicals *fakeChemicals
	sales     *fakeSales
	purchases *fakePurchases
	svc       *ReportService
}

func newReportFixture(chems ...*models.Chemical) *reportFixture {
	chemicals := newFakeChemicals(chems...)
	sales := &fakeSales{chemicals: chemicals}
	purchases := &fakePurchases{chemicals: chemicals}
	svc := NewReportService(chemicals, sales, purchases, 20, 30)
	svc.Now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, timeutil.IST) }
	return &reportFixture{chemicals: chemicals, sales: sales, purchases: purchases, svc: svc}
}

func TestBuildDetailedReportScenario(t *testing.T) {
	acid := &models.Chemical{ID: "acid", Name: "Acid A", BatchNumber: "B1", Quantity: 5, UnitPrice: ptr(100.0)}
	f := newReportFixture(acid)
	f.sales.items = []*models.Sale{{ID: "s1", ChemicalID: "acid", Quantity: 3}}
	f.purchases.items = []*models.Purchase{{ID: "p1", ChemicalID: "acid", Quantity: 10, Price: 50}}

	report, err := f.svc.BuildDetailedReport(context.Background(), models.ReportFilter{})
	if err != nil {
		t.Fatalf("BuildDetailedReport: %v", err)
	}

	if report.TotalSalesValue != 300 {
		t.Errorf("totalSalesValue: want 300, got %v", report.TotalSalesValue)
	}
	if report.TotalPurchaseCost != 500 {
		t.Errorf("totalPurchaseCost: want 500, got %v", report.TotalPurchaseCost)
	}
	if report.SalesCount != 1 || report.PurchaseCount != 1 || report.TotalChemicals != 1 {
		t.Errorf("counts: got sales=%d purchases=%d chemicals=%d", report.SalesCount, report.PurchaseCount, report.TotalChemicals)
	}
	if report.TotalPaymentMade != 0 {
		t.Errorf("purchases without a payment amount should total 0, got %v", report.TotalPaymentMade)
	}
}

func TestBuildDetailedReportTotals(t *testing.T) {
	f := newReportFixture(
		&models.Chemical{ID: "a", Name: "A", UnitPrice: ptr(0.1)},
		&models.Chemical{ID: "b", Name: "B"},
	)
	f.sales.items = []*models.Sale{
		{ID: "1", ChemicalID: "a", Quantity: 3, PaymentAmount: 0.1},
		{ID: "2", ChemicalID: "a", Quantity: 3, PaymentAmount: 0.2},
		{ID: "3", ChemicalID: "b", Quantity: 7, PaymentAmount: 5},
	}
	f.purchases.items = []*models.Purchase{
		{ID: "1", ChemicalID: "a", Quantity: 2, Price: 1.5, PaymentAmount: 3},
		{ID: "2", ChemicalID: "gone", Quantity: 1, Price: 4, PaymentAmount: 1.25},
	}

	report, err := f.svc.BuildDetailedReport(context.Background(), models.ReportFilter{})
	if err != nil {
		t.Fatalf("BuildDetailedReport: %v", err)
	}

	// 3*0.1 + 3*0.1, exact under decimal arithmetic; chemical B has no price
	if report.TotalSalesValue != 0.6 {
		t.Errorf("totalSalesValue: want 0.6, got %v", report.TotalSalesValue)
	}
	if report.TotalPaymentReceived != 5.3 {
		t.Errorf("totalPaymentReceived: want 5.3, got %v", report.TotalPaymentReceived)
	}
	// purchase cost never depends on the chemical resolving
	if report.TotalPurchaseCost != 7 {
		t.Errorf("totalPurchaseCost: want 7, got %v", report.TotalPurchaseCost)
	}
	if report.TotalPaymentMade != 4.25 {
		t.Errorf("totalPaymentMade: want 4.25, got %v", report.TotalPaymentMade)
	}
	if report.SalesCount != len(report.SalesDetails) || report.PurchaseCount != len(report.PurchaseDetails) || report.TotalChemicals != len(report.ChemicalDetails) {
		t.Error("counts must equal detail lengths")
	}
}

func TestDanglingSaleContributesZero(t *testing.T) {
	f := newReportFixture(&models.Chemical{ID: "a", Name: "A", UnitPrice: ptr(10.0)})
	f.sales.items = []*models.Sale{
		{ID: "1", ChemicalID: "a", Quantity: 2},
		{ID: "2", ChemicalID: "deleted", Quantity: 50, PaymentAmount: 7},
	}

	report, err := f.svc.BuildDetailedReport(context.Background(), models.ReportFilter{})
	if err != nil {
		t.Fatalf("BuildDetailedReport: %v", err)
	}
	if report.TotalSalesValue != 20 {
		t.Errorf("want 20, got %v", report.TotalSalesValue)
	}
	if report.SalesCount != 2 {
		t.Errorf("dangling sale must still be counted, got %d", report.SalesCount)
	}
	if report.TotalPaymentReceived != 7 {
		t.Errorf("payment on dangling sale still counts, got %v", report.TotalPaymentReceived)
	}

	var dangling *models.Sale
	for _, s := range report.SalesDetails {
		if s.ID == "2" {
			dangling = s
		}
	}
	if dangling == nil || dangling.Chemical != nil {
		t.Fatal("dangling sale should be present with a nil chemical")
	}
}

func TestBuildDetailedReportEmpty(t *testing.T) {
	report, err := newReportFixture().svc.BuildDetailedReport(context.Background(), models.ReportFilter{})
	if err != nil {
		t.Fatalf("BuildDetailedReport: %v", err)
	}
	if report.SalesDetails == nil || report.PurchaseDetails == nil || report.ChemicalDetails == nil {
		t.Error("detail slices must be empty, not nil")
	}
	if report.TotalSalesValue != 0 || report.TotalPurchaseCost != 0 {
		t.Error("empty stores must produce zero totals")
	}
}

func TestBuildDetailedReportIdempotent(t *testing.T) {
	f := newReportFixture(&models.Chemical{ID: "a", Name: "A", UnitPrice: ptr(3.0)})
	f.sales.items = []*models.Sale{{ID: "1", ChemicalID: "a", Quantity: 4, PaymentAmount: 2}}
	f.purchases.items = []*models.Purchase{{ID: "1", ChemicalID: "a", Quantity: 1, Price: 2}}

	first, err := f.svc.BuildDetailedReport(context.Background(), models.ReportFilter{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.svc.BuildDetailedReport(context.Background(), models.ReportFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalSalesValue != second.TotalSalesValue ||
		first.TotalPurchaseCost != second.TotalPurchaseCost ||
		first.TotalPaymentReceived != second.TotalPaymentReceived ||
		first.SalesCount != second.SalesCount ||
		first.PurchaseCount != second.PurchaseCount ||
		first.TotalChemicals != second.TotalChemicals {
		t.Errorf("reports differ: %+v vs %+v", first, second)
	}
}

func TestBuildDetailedReportFailure(t *testing.T) {
	tests := []struct {
		name       string
		breakStore func(f *reportFixture)
	}{
		{"sales", func(f *reportFixture) { f.sales.err = errors.New("sales down") }},
		{"purchases", func(f *reportFixture) { f.purchases.err = errors.New("purchases down") }},
		{"chemicals", func(f *reportFixture) { f.chemicals.err = errors.New("chemicals down") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReportFixture()
			tt.breakStore(f)
			report, err := f.svc.BuildDetailedReport(context.Background(), models.ReportFilter{})
			if !errors.Is(err, ErrReportFailed) {
				t.Fatalf("want ErrReportFailed, got %v", err)
			}
			if report != nil {
				t.Error("no partial report may be returned")
			}
		})
	}
}

func TestBuildDetailedReportDateFilter(t *testing.T) {
	f := newReportFixture(&models.Chemical{ID: "a", Name: "A", UnitPrice: ptr(1.0)})
	jan := time.Date(2026, 1, 15, 10, 0, 0, 0, timeutil.IST)
	feb := time.Date(2026, 2, 15, 10, 0, 0, 0, timeutil.IST)
	f.sales.items = []*models.Sale{
		{ID: "1", ChemicalID: "a", Quantity: 1, SaleDate: jan},
		{ID: "2", ChemicalID: "a", Quantity: 2, SaleDate: feb},
	}
	f.purchases.items = []*models.Purchase{
		{ID: "1", ChemicalID: "a", Quantity: 1, Price: 1, PurchaseDate: jan},
		{ID: "2", ChemicalID: "a", Quantity: 1, Price: 1, PurchaseDate: feb},
	}

	from := timeutil.StartOfDay(feb)
	to := timeutil.EndOfDay(feb)
	report, err := f.svc.BuildDetailedReport(context.Background(), models.ReportFilter{From: &from, To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if report.SalesCount != 1 || report.PurchaseCount != 1 {
		t.Errorf("want one sale and one purchase in February, got %d/%d", report.SalesCount, report.PurchaseCount)
	}
	if report.TotalChemicals != 1 {
		t.Error("chemicals are never date filtered")
	}
	if report.TotalSalesValue != 2 {
		t.Errorf("want 2, got %v", report.TotalSalesValue)
	}
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, timeutil.IST)
	f := newReportFixture(
		&models.Chemical{ID: "a", Name: "A", Quantity: 0, UnitPrice: ptr(10.0), ExpirationDate: ptr(now.AddDate(0, 0, 5))},
		&models.Chemical{ID: "b", Name: "B", Quantity: 100, UnitPrice: ptr(2.0)},
	)
	f.sales.items = []*models.Sale{
		{ID: "1", ChemicalID: "a", Quantity: 3, SaleDate: now, PaymentStatus: models.PaymentPending, PaymentAmount: 10},
		{ID: "2", ChemicalID: "b", Quantity: 5, SaleDate: now, PaymentStatus: models.PaymentPaid, PaymentAmount: 10},
	}

	summary, err := f.svc.BuildSummary(context.Background(), models.ReportFilter{})
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if len(summary.TopSelling) != 2 || summary.TopSelling[0].Name != "B" {
		t.Errorf("unexpected top sellers %+v", summary.TopSelling)
	}
	if len(summary.LowStock) != 1 || summary.LowStock[0].ID != "a" {
		t.Errorf("unexpected low stock %+v", summary.LowStock)
	}
	if len(summary.ExpiringSoon) != 1 || summary.OutOfStock != 1 {
		t.Errorf("expiring=%d outOfStock=%d", len(summary.ExpiringSoon), summary.OutOfStock)
	}
	// pending sale of A: 30 owed, 10 received
	if summary.OutstandingDue != 20 {
		t.Errorf("outstanding: want 20, got %v", summary.OutstandingDue)
	}
	if len(summary.Trend) != 1 || summary.Trend[0].Period != "2026-03" || summary.Trend[0].Sales != 40 {
		t.Errorf("unexpected trend %+v", summary.Trend)
	}
	if !summary.GeneratedAt.Equal(now) {
		t.Errorf("generatedAt should come from the service clock")
	}
}
