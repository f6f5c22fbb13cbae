package entity

import "time"

// TaxRate is the fixed 10% tax applied on top of the order subtotal.
// Tax and final amount are always derived from the subtotal at display
// time; they are never stored on their own.
const TaxRate = 0.10

type OrderType string

const (
	TypeCustomerSelf    OrderType = "CUSTOMER_SELF"
	TypeCashierAssisted OrderType = "CASHIER_ASSISTED"
)

type OrderItem struct {
	ID       int64   `json:"id"`
	MenuID   int64   `json:"menuId"`
	MenuName string  `json:"menuName"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is the backend's order record. OrderNumber is server-assigned and
// immutable; Total is the tax-exclusive subtotal of all line items.
type Order struct {
	ID            int64         `json:"id"`
	OrderNumber   string        `json:"orderNumber"`
	CustomerName  string        `json:"customerName"`
	OrderType     OrderType     `json:"orderType"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	Items         []OrderItem   `json:"items,omitempty"`
	Total         float64       `json:"total"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (o Order) Tax() float64 {
	return o.Total * TaxRate
}

func (o Order) FinalAmount() float64 {
	return o.Total * (1 + TaxRate)
}

// Actions is the action set a view may offer for this order.
func (o Order) Actions() []OrderAction {
	return ActionsFor(o.Status, o.PaymentStatus)
}

// DashboardStats is the cashier dashboard summary assembled from today's
// orders and the menu list.
type DashboardStats struct {
	TodayRevenue   float64 `json:"todayRevenue"`
	TodayOrders    int64   `json:"todayOrders"`
	PendingOrders  int64   `json:"pendingOrders"`
	AvailableMenus int64   `json:"availableMenus"`
	RecentOrders   []Order `json:"recentOrders"`
}
