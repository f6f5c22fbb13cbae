package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xdranel/Menu-Ordering/entity"
)

// ErrMissingQRCode rejects a QR payment with an empty transaction code
// before any network call is made.
var ErrMissingQRCode = errors.New("QR transaction code is required")

// InsufficientCashError rejects a cash payment locally when the tendered
// amount does not cover the final amount. Shortfall is shown to the cashier.
type InsufficientCashError struct {
	Required  float64
	Tendered  float64
	Shortfall float64
}

func (e *InsufficientCashError) Error() string {
	return fmt.Sprintf("cash tendered is short by %.2f (need %.2f, got %.2f)",
		e.Shortfall, e.Required, e.Tendered)
}

// PaymentRequest carries one payment submission. FinalAmount is the
// tax-inclusive amount due, computed by the caller from the order subtotal
// (Order.FinalAmount); it is used for the local pre-flight check only and
// never sent to the backend.
type PaymentRequest struct {
	OrderNumber string
	Method      entity.PaymentMethod
	FinalAmount float64
	CashAmount  float64
	QRData      string
}

// Validate applies the local pre-flight rules. A request that fails here
// must never reach the backend.
func (r PaymentRequest) Validate() error {
	switch r.Method {
	case entity.MethodCash:
		if r.CashAmount < r.FinalAmount {
			return &InsufficientCashError{
				Required:  r.FinalAmount,
				Tendered:  r.CashAmount,
				Shortfall: r.FinalAmount - r.CashAmount,
			}
		}
	case entity.MethodQR:
		if strings.TrimSpace(r.QRData) == "" {
			return ErrMissingQRCode
		}
	default:
		return fmt.Errorf("unknown payment method %q", r.Method)
	}
	return nil
}

type paymentBody struct {
	OrderNumber   string               `json:"orderNumber"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	CashAmount    float64              `json:"cashAmount,omitempty"`
	QRData        string               `json:"qrData,omitempty"`
}

// SubmitPayment validates locally, then posts the payment. For cash the
// returned record carries the change due (tendered minus final amount).
func (c *Client) SubmitPayment(ctx context.Context, req PaymentRequest) (*entity.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := paymentBody{OrderNumber: req.OrderNumber, PaymentMethod: req.Method}
	switch req.Method {
	case entity.MethodCash:
		body.CashAmount = req.CashAmount
	case entity.MethodQR:
		body.QRData = strings.TrimSpace(req.QRData)
	}

	var p entity.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", nil, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
