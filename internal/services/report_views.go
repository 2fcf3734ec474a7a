package services

import (
	"sort"
	"time"

	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// TopSellersLimit is the size of the top-selling chemicals view
const TopSellersLimit = 5

// TopSellingChemicals groups sale quantities by chemical name and returns the
// n largest, ties broken by name. Unresolved chemicals group under "Unknown".
func TopSellingChemicals(sales []*models.Sale, n int) []models.TopSeller {
	totals := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		name := sale.Chemical.DisplayName()
		totals[name] = totals[name].Add(decimal.NewFromFloat(sale.Quantity))
	}

	sellers := make([]models.TopSeller, 0, len(totals))
	for name, qty := range totals {
		sellers = append(sellers, models.TopSeller{Name: name, Quantity: qty.InexactFloat64()})
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].Quantity != sellers[j].Quantity {
			return sellers[i].Quantity > sellers[j].Quantity
		}
		return sellers[i].Name < sellers[j].Name
	})

	if n >= 0 && len(sellers) > n {
		sellers = sellers[:n]
	}
	return sellers
}

// SalesPurchaseTrend buckets the report by calendar month (IST) and returns
// sales value, purchase cost and profit per month in chronological order.
func SalesPurchaseTrend(report *models.DetailedReport) []models.TrendPoint {
	type bucket struct {
		sales, purchases decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	get := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		return b
	}

	if report != nil {
		for _, sale := range report.SalesDetails {
			b := get(timeutil.MonthKey(sale.SaleDate))
			b.sales = b.sales.Add(decimal.NewFromFloat(sale.Quantity).Mul(decimal.NewFromFloat(sale.Chemical.Price())))
		}
		for _, p := range report.PurchaseDetails {
			b := get(timeutil.MonthKey(p.PurchaseDate))
			b.purchases = b.purchases.Add(decimal.NewFromFloat(p.Quantity).Mul(decimal.NewFromFloat(p.Price)))
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trend := make([]models.TrendPoint, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		trend = append(trend, models.TrendPoint{
			Period:    k,
			Sales:     b.sales.InexactFloat64(),
			Purchases: b.purchases.InexactFloat64(),
			Profit:    b.sales.Sub(b.purchases).InexactFloat64(),
		})
	}
	return trend
}

// ExpiringSoon returns chemicals with now <= expirationDate <= now+window.
// Chemicals without an expiration date never expire.
func ExpiringSoon(chemicals []*models.Chemical, now time.Time, window time.Duration) []*models.Chemical {
	end := now.Add(window)
	out := []*models.Chemical{}
	for _, c := range chemicals {
		if c.ExpirationDate == nil {
			continue
		}
		exp := *c.ExpirationDate
		if exp.Before(now) || exp.After(end) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpirationDate.Before(*out[j].ExpirationDate)
	})
	return out
}

// LowStock returns chemicals with quantity strictly below threshold
func LowStock(chemicals []*models.Chemical, threshold float64) []*models.Chemical {
	out := []*models.Chemical{}
	for _, c := range chemicals {
		if c.Quantity < threshold {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quantity < out[j].Quantity
	})
	return out
}

// OutOfStockCount counts chemicals with nothing left
func OutOfStockCount(chemicals []*models.Chemical) int {
	n := 0
	for _, c := range chemicals {
		if c.Quantity <= 0 {
			n++
		}
	}
	return n
}

// OutstandingDue sums the unpaid balance of sales still marked Pending:
// sale value minus what was received, floored at zero per sale.
func OutstandingDue(sales []*models.Sale) float64 {
	due := decimal.Zero
	for _, sale := range sales {
		if sale.PaymentStatus != models.PaymentPending {
			continue
		}
		owed := decimal.NewFromFloat(sale.Quantity).Mul(decimal.NewFromFloat(sale.Chemical.Price())).
			Sub(decimal.NewFromFloat(sale.PaymentAmount))
		if owed.IsPositive() {
			due = due.Add(owed)
		}
	}
	return due.InexactFloat64()
}
