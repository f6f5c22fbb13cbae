package entity

import "time"

// Invoice is issued server-side after a successful payment and is
// immutable; the gateway only reads and renders it.
type Invoice struct {
	ID            int64         `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	OrderNumber   string        `json:"orderNumber"`
	Order         *Order        `json:"order,omitempty"`
	TotalAmount   float64       `json:"totalAmount"`
	TaxAmount     float64       `json:"taxAmount"`
	FinalAmount   float64       `json:"finalAmount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CashierName   string        `json:"cashierName"`
	CreatedAt     time.Time     `json:"createdAt"`
}
