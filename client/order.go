package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xdranel/Menu-Ordering/entity"
)

type CreateOrderItem struct {
	MenuID   int64 `json:"menuId"`
	Quantity int   `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderType    entity.OrderType  `json:"orderType"`
	CustomerName string            `json:"customerName"`
	Items        []CreateOrderItem `json:"items"`
}

// CreateOrder submits a new order. The backend assigns the order number.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*entity.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order needs at least one item")
	}
	for _, it := range req.Items {
		if err := entity.ValidateQuantity(it.Quantity); err != nil {
			return nil, err
		}
	}
	var o entity.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Order fetches the full order detail by its server-assigned number.
func (c *Client) Order(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var o entity.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderNumber), nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Orders lists every order the backend holds.
func (c *Client) Orders(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TodayOrders lists the orders created today, the dashboard's working set.
func (c *Client) TodayOrders(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	if err := c.do(ctx, http.MethodGet, "/orders/today", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus asks the backend to move an order to target. The
// backend is the sole authority over transition legality; a rejection
// comes back as *APIError and nothing is mutated on this side.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, target entity.OrderStatus) (*entity.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("unknown order status %q", target)
	}
	q := url.Values{"status": {string(target)}}
	path := fmt.Sprintf("/orders/%d/status", orderID)
	var o entity.Order
	if err := c.do(ctx, http.MethodPut, path, q, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderQRCode fetches the payment QR payload for an order, a data URL the
// payment page embeds directly.
func (c *Client) OrderQRCode(ctx context.Context, orderNumber string) (string, error) {
	var out struct {
		QRCode string `json:"qrCode"`
	}
	path := "/orders/" + url.PathEscape(orderNumber) + "/qr-code"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return "", err
	}
	return out.QRCode, nil
}

// Menus lists the menu for the customer page and availability counts.
func (c *Client) Menus(ctx context.Context) ([]entity.Menu, error) {
	var out []entity.Menu
	if err := c.do(ctx, http.MethodGet, "/menus", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Invoice fetches a single invoice by its number, for printing.
func (c *Client) Invoice(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	var inv entity.Invoice
	path := "/invoices/" + url.PathEscape(invoiceNumber)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// InvoicesByDate lists invoices whose creation date falls in [start, end].
// Dates go over the wire as yyyy-mm-dd; the backend expands the end date
// to end-of-day.
func (c *Client) InvoicesByDate(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	q := url.Values{
		"startDate": {start.Format("2006-01-02")},
		"endDate":   {end.Format("2006-01-02")},
	}
	var out []entity.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/by-date", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
