package services

import (
	"github.com/tealeg/xlsx"

	"github.com/xdranel/Menu-Ordering/entity"
	"github.com/xdranel/Menu-Ordering/utils"
)

// ExportXLSX builds the downloadable workbook for a sales report: one
// summary sheet, one top-items sheet and one row per invoice in the window.
func (s *ReportService) ExportXLSX(report *SalesReport, invoices []entity.Invoice) (*xlsx.File, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, err
	}
	addRow := func(label string, value any) {
		row := summary.AddRow()
		row.AddCell().SetValue(label)
		row.AddCell().SetValue(value)
	}
	addRow("Period", report.StartDate+" to "+report.EndDate)
	addRow("Total Orders", report.TotalOrders)
	addRow("Completed Orders", report.CompletedOrders)
	addRow("Cancelled Orders", report.CancelledOrders)
	addRow("Paid Orders", report.PaidOrders)
	addRow("Cash Payments", report.CashPayments)
	addRow("QR Payments", report.QRPayments)
	addRow("Total Revenue", utils.FormatRupiah(report.TotalRevenue))
	addRow("Total Tax (10%)", utils.FormatRupiah(report.TotalTax))

	items, err := file.AddSheet("Top Items")
	if err != nil {
		return nil, err
	}
	header := items.AddRow()
	for _, h := range []string{"Menu", "Quantity", "Revenue"} {
		header.AddCell().SetValue(h)
	}
	for _, it := range report.TopItems {
		row := items.AddRow()
		row.AddCell().SetValue(it.MenuName)
		row.AddCell().SetValue(it.Quantity)
		row.AddCell().SetValue(utils.FormatRupiah(it.Revenue))
	}

	sheet, err := file.AddSheet("Invoices")
	if err != nil {
		return nil, err
	}
	header = sheet.AddRow()
	for _, h := range []string{
		"Invoice Number", "Order Number", "Total", "Tax", "Final Amount",
		"Payment Method", "Cashier", "Created At",
	} {
		header.AddCell().SetValue(h)
	}
	for _, inv := range invoices {
		row := sheet.AddRow()
		row.AddCell().SetValue(inv.InvoiceNumber)
		row.AddCell().SetValue(inv.OrderNumber)
		row.AddCell().SetValue(inv.TotalAmount)
		row.AddCell().SetValue(inv.TaxAmount)
		row.AddCell().SetValue(inv.FinalAmount)
		row.AddCell().SetValue(string(inv.PaymentMethod))
		row.AddCell().SetValue(inv.CashierName)
		row.AddCell().SetValue(inv.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file, nil
}
