package entity

import "fmt"

// Cart quantity bounds per line item.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// ValidateQuantity checks the 1..99 line-item bound. Zero is not valid
// here; callers treat a zero-quantity update as a removal instead.
func ValidateQuantity(qty int) error {
	if qty < MinQuantity || qty > MaxQuantity {
		return fmt.Errorf("quantity must be between %d and %d", MinQuantity, MaxQuantity)
	}
	return nil
}

type CartItem struct {
	MenuID   int64   `json:"menuId"`
	MenuName string  `json:"menuName"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the server-session cart snapshot. The gateway never owns cart
// state; this is a transient read copy for rendering.
type Cart struct {
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Total      float64    `json:"total"`
	TotalItems int        `json:"totalItems"`
}
