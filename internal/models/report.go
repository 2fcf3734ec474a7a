package models

import "time"

// DetailedReport is the composite snapshot served by /api/reports/detailed.
// Field names follow the JSON document the dashboard consumes.
type DetailedReport struct {
	SalesCount           int         `json:"salesCount"`
	TotalSalesValue      float64     `json:"totalSalesValue"`
	TotalPaymentReceived float64     `json:"totalPaymentReceived"`
	SalesDetails         []*Sale     `json:"salesDetails"`
	PurchaseCount        int         `json:"purchaseCount"`
	TotalPurchaseCost    float64     `json:"totalPurchaseCost"`
	TotalPaymentMade     float64     `json:"totalPaymentMade"`
	PurchaseDetails      []*Purchase `json:"purchaseDetails"`
	TotalChemicals       int         `json:"totalChemicals"`
	ChemicalDetails      []*Chemical `json:"chemicalDetails"`
}

// ReportFilter optionally narrows sales and purchases by date (inclusive).
// The zero value selects every record.
type ReportFilter struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether no bound is set
func (f ReportFilter) IsZero() bool {
	return f.From == nil && f.To == nil
}

// Contains reports whether t lies inside the filter bounds
func (f ReportFilter) Contains(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

// Alerts is the response of /api/alerts
type Alerts struct {
	LowStock []*Chemical `json:"lowStock"`
	Expiring []*Chemical `json:"expiring"`
}

// TopSeller is one row of the top-selling chemicals view
type TopSeller struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// TrendPoint is one monthly bucket of the sales-vs-purchases trend
type TrendPoint struct {
	Period    string  `json:"period"` // YYYY-MM
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
	Profit    float64 `json:"profit"`
}

// ReportSummary bundles the detailed report with its derived views
type ReportSummary struct {
	Report         *DetailedReport `json:"report"`
	TopSelling     []TopSeller     `json:"topSelling"`
	Trend          []TrendPoint    `json:"trend"`
	ExpiringSoon   []*Chemical     `json:"expiringSoon"`
	LowStock       []*Chemical     `json:"lowStock"`
	OutOfStock     int             `json:"outOfStock"`
	OutstandingDue float64         `json:"outstandingDue"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}
