package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

var (
	salesHeader     = []string{"#", "Date", "Chemical", "Batch", "Quantity", "Value", "Received", "Customer", "Contact", "Paid By", "Status"}
	purchasesHeader = []string{"#", "Date", "Chemical", "Batch", "Supplier", "Quantity", "Price", "Cost", "Paid", "Status"}
	chemicalsHeader = []string{"#", "Name", "Batch", "Quantity", "Unit", "Price", "Intake", "Expires"}
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(timeutil.IST).Format(timeutil.DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func qty(v float64) string {
	return fmt.Sprintf("%g", v)
}

func summaryRows(r *models.DetailedReport) [][]string {
	return [][]string{
		{"Sales", fmt.Sprintf("%d", r.SalesCount)},
		{"Total Sales Value", money(r.TotalSalesValue)},
		{"Total Payment Received", money(r.TotalPaymentReceived)},
		{"Purchases", fmt.Sprintf("%d", r.PurchaseCount)},
		{"Total Purchase Cost", money(r.TotalPurchaseCost)},
		{"Total Payment Made", money(r.TotalPaymentMade)},
		{"Chemicals", fmt.Sprintf("%d", r.TotalChemicals)},
	}
}

func saleRow(i int, s *models.Sale) []string {
	batch := ""
	if s.Chemical != nil {
		batch = s.Chemical.BatchNumber
	}
	return []string{
		fmt.Sprintf("%d", i+1),
		formatDate(s.SaleDate),
		s.Chemical.DisplayName(),
		batch,
		qty(s.Quantity),
		money(s.Value()),
		money(s.PaymentAmount),
		s.CustomerName,
		s.CustomerContact,
		string(s.PaidBy),
		string(s.PaymentStatus),
	}
}

func purchaseRow(i int, p *models.Purchase) []string {
	batch := ""
	if p.Chemical != nil {
		batch = p.Chemical.BatchNumber
	}
	return []string{
		fmt.Sprintf("%d", i+1),
		formatDate(p.PurchaseDate),
		p.Chemical.DisplayName(),
		batch,
		p.SupplierName,
		qty(p.Quantity),
		money(p.Price),
		money(p.TotalCost()),
		money(p.PaymentAmount),
		string(p.PaymentStatus),
	}
}

func chemicalRow(i int, c *models.Chemical) []string {
	price := ""
	if c.UnitPrice != nil {
		price = money(*c.UnitPrice)
	}
	return []string{
		fmt.Sprintf("%d", i+1),
		c.Name,
		c.BatchNumber,
		qty(c.Quantity),
		c.Unit,
		price,
		formatDate(c.IntakeDate),
		formatOptionalDate(c.ExpirationDate),
	}
}

// GenerateDetailedCSV renders the detailed report as one CSV document with a
// summary block followed by the sales, purchases and chemicals sections.
func (s *ReportService) GenerateDetailedCSV(ctx context.Context, filter models.ReportFilter) ([]byte, error) {
	report, err := s.BuildDetailedReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	return RenderCSV(report)
}

func RenderCSV(report *models.DetailedReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Summary"})
	for _, row := range summaryRows(report) {
		w.Write(row)
	}

	w.Write(nil)
	w.Write([]string{"Sales"})
	w.Write(salesHeader)
	for i, sale := range report.SalesDetails {
		w.Write(saleRow(i, sale))
	}

	w.Write(nil)
	w.Write([]string{"Purchases"})
	w.Write(purchasesHeader)
	for i, p := range report.PurchaseDetails {
		w.Write(purchaseRow(i, p))
	}

	w.Write(nil)
	w.Write([]string{"Chemicals"})
	w.Write(chemicalsHeader)
	for i, c := range report.ChemicalDetails {
		w.Write(chemicalRow(i, c))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateDetailedPDF renders the detailed report as an A4 PDF
func (s *ReportService) GenerateDetailedPDF(ctx context.Context, filter models.ReportFilter) ([]byte, error) {
	report, err := s.BuildDetailedReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	return RenderPDF(report, s.now())
}

func RenderPDF(report *models.DetailedReport, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Chemical Inventory - Detailed Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", generatedAt.In(timeutil.IST).Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Summary
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, row := range summaryRows(report) {
		pdf.CellFormat(120, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(157, 7, row[1], "1", 1, "R", false, 0, "")
	}

	pdfTable(pdf, "Sales", salesHeader, []float64{10, 24, 40, 24, 20, 26, 26, 36, 30, 20, 21}, len(report.SalesDetails), func(i int) []string {
		return saleRow(i, report.SalesDetails[i])
	})
	pdfTable(pdf, "Purchases", purchasesHeader, []float64{10, 24, 45, 28, 50, 24, 24, 26, 24, 22}, len(report.PurchaseDetails), func(i int) []string {
		return purchaseRow(i, report.PurchaseDetails[i])
	})
	pdfTable(pdf, "Chemicals", chemicalsHeader, []float64{10, 70, 40, 30, 20, 30, 38, 39}, len(report.ChemicalDetails), func(i int) []string {
		return chemicalRow(i, report.ChemicalDetails[i])
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfTable(pdf *gofpdf.Fpdf, title string, header []string, widths []float64, n int, row func(int) []string) {
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(277, 8, fmt.Sprintf("%s (%d)", title, n), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := 0; i < n; i++ {
		for j, cell := range row(i) {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// GenerateDetailedXLSX renders the detailed report as a workbook with one
// sheet per section
func (s *ReportService) GenerateDetailedXLSX(ctx context.Context, filter models.ReportFilter) ([]byte, error) {
	report, err := s.BuildDetailedReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	return RenderXLSX(report)
}

func RenderXLSX(report *models.DetailedReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Summary", []string{"Metric", "Value"}, summaryRows(report)); err != nil {
		return nil, err
	}

	sales := make([][]string, len(report.SalesDetails))
	for i, sale := range report.SalesDetails {
		sales[i] = saleRow(i, sale)
	}
	purchases := make([][]string, len(report.PurchaseDetails))
	for i, p := range report.PurchaseDetails {
		purchases[i] = purchaseRow(i, p)
	}
	chemicals := make([][]string, len(report.ChemicalDetails))
	for i, c := range report.ChemicalDetails {
		chemicals[i] = chemicalRow(i, c)
	}

	for _, sheet := range []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"Sales", salesHeader, sales},
		{"Purchases", purchasesHeader, purchases},
		{"Chemicals", chemicalsHeader, chemicals},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, sheet.name, sheet.header, sheet.rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(sheet, "A", "K", 16)
}
