package entity

import (
	"fmt"
	"time"
)

// PaymentStatus is orthogonal to OrderStatus but gates which order
// transitions are offered (see ActionsFor).
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for _, st := range PaymentStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// Terminal reports whether the payment-status poll may stop.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentPaid || s == PaymentFailed
}

type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodQR   PaymentMethod = "QR_CODE"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCash, MethodQR:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Payment is the backend's record of a processed payment. Change is only
// meaningful for cash and must be shown when positive.
type Payment struct {
	OrderNumber    string        `json:"orderNumber"`
	Method         PaymentMethod `json:"paymentMethod"`
	Amount         float64       `json:"amount"`
	Change         float64       `json:"change"`
	TransactionRef string        `json:"transactionRef,omitempty"`
	PaidAt         time.Time     `json:"paidAt"`
}
