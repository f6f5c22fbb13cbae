package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xdranel/Menu-Ordering/entity"
	"github.com/xdranel/Menu-Ordering/services"
)

func TestInvoiceReceipt(t *testing.T) {
	t.Parallel()

	inv := &entity.Invoice{
		InvoiceNumber: "INV-20260802-001",
		OrderNumber:   "ORD-1",
		TotalAmount:   45000,
		TaxAmount:     4500,
		FinalAmount:   49500,
		PaymentMethod: entity.MethodCash,
		CashierName:   "Ani",
		CreatedAt:     time.Date(2026, 8, 2, 10, 30, 0, 0, time.Local),
		Order: &entity.Order{
			CustomerName: "Budi",
			Items: []entity.OrderItem{
				{MenuName: "Nasi Goreng", Price: 10000, Quantity: 2},
				{MenuName: "Sate Ayam", Price: 25000, Quantity: 1},
			},
		},
	}

	html, err := Invoice(inv)
	assert.NoError(t, err)

	assert.Contains(t, html, "INV-20260802-001")
	assert.Contains(t, html, "Budi")
	assert.Contains(t, html, "Nasi Goreng")
	assert.Contains(t, html, "Rp 45.000")
	assert.Contains(t, html, "Rp 4.500")
	assert.Contains(t, html, "Rp 49.500")
	assert.Contains(t, html, "CASH")
	assert.Contains(t, html, "Ani")
}

func TestInvoiceEscapesMarkup(t *testing.T) {
	t.Parallel()

	inv := &entity.Invoice{
		InvoiceNumber: "INV-2",
		Order: &entity.Order{
			CustomerName: `<script>alert("x")</script>`,
		},
	}

	html, err := Invoice(inv)
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}

func TestReportPage(t *testing.T) {
	t.Parallel()

	report := &services.SalesReport{
		StartDate: "2026-08-01", EndDate: "2026-08-07",
		TotalOrders: 4, CompletedOrders: 2, CancelledOrders: 1,
		CashPayments: 1, QRPayments: 1,
		TotalRevenue: 71500, TotalTax: 6500,
		TopItems: []services.ItemSales{
			{MenuName: "Nasi Goreng", Quantity: 4, Revenue: 40000},
		},
	}

	html, err := Report(report)
	assert.NoError(t, err)
	assert.Contains(t, html, "2026-08-01")
	assert.Contains(t, html, "Rp 71.500")
	assert.Contains(t, html, "Nasi Goreng")

	empty, err := Report(&services.SalesReport{StartDate: "2026-08-01", EndDate: "2026-08-01"})
	assert.NoError(t, err)
	assert.Contains(t, empty, "No sales in this period")
}
