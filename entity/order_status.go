package entity

import "fmt"

// OrderStatus is the order lifecycle state as reported by the backend.
// PENDING → CONFIRMED → PREPARING → READY → COMPLETED, with CANCELLED
// reachable from PENDING only. COMPLETED and CANCELLED are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every lifecycle state in transition order.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing,
	StatusReady, StatusCompleted, StatusCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) Valid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

// Terminal reports whether no further action may be offered for s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OrderAction is one action a view may offer for an order. Target is the
// status the backend is asked to move to; it is empty for take-payment,
// which leaves the order status untouched.
type OrderAction struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Target OrderStatus `json:"target,omitempty"`
}

var (
	ActionConfirm     = OrderAction{ID: "confirm", Label: "Konfirmasi", Target: StatusConfirmed}
	ActionCancel      = OrderAction{ID: "cancel", Label: "Batalkan", Target: StatusCancelled}
	ActionPrepare     = OrderAction{ID: "preparing", Label: "Mulai Persiapan", Target: StatusPreparing}
	ActionReady       = OrderAction{ID: "ready", Label: "Siap Diantar", Target: StatusReady}
	ActionTakePayment = OrderAction{ID: "payment", Label: "Proses Pembayaran"}
	ActionComplete    = OrderAction{ID: "complete", Label: "Selesaikan Pesanan", Target: StatusCompleted}
)

// ActionsFor derives the action set for a (status, payment status) pair.
// Every renderer consumes this one function; action sets are never assembled
// per view. READY gates on payment: take-payment is offered while payment
// is pending, completion once it has settled.
func ActionsFor(status OrderStatus, payment PaymentStatus) []OrderAction {
	switch status {
	case StatusPending:
		return []OrderAction{ActionConfirm, ActionCancel}
	case StatusConfirmed:
		return []OrderAction{ActionPrepare}
	case StatusPreparing:
		return []OrderAction{ActionReady}
	case StatusReady:
		if payment == PaymentPending {
			return []OrderAction{ActionTakePayment}
		}
		return []OrderAction{ActionComplete}
	default:
		// COMPLETED, CANCELLED and anything unknown offer nothing.
		return nil
	}
}
