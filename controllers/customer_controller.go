package controllers

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/entity"
	"github.com/xdranel/Menu-Ordering/pkg/resp"
	"github.com/xdranel/Menu-Ordering/services"
)

// watchTimeout bounds a payment watch so an abandoned payment page cannot
// leave a poller running forever.
const watchTimeout = 10 * time.Minute

type CustomerController struct {
	API     *client.Client
	Watcher *services.PaymentWatcher

	mu       sync.Mutex
	watching map[string]bool
}

func NewCustomerController(api *client.Client, watcher *services.PaymentWatcher) *CustomerController {
	return &CustomerController{API: api, Watcher: watcher, watching: make(map[string]bool)}
}

// ===== Cart (server-session state, this side holds nothing) =====

// GET /customer/api/cart
func (cc *CustomerController) Cart(c *gin.Context) {
	cart, err := cc.API.Cart(c.Request.Context())
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, cart)
}

// GET /customer/api/cart/count
func (cc *CustomerController) CartCount(c *gin.Context) {
	count, err := cc.API.CartCount(c.Request.Context())
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, gin.H{"count": count})
}

type addToCartReq struct {
	MenuID   int64 `json:"menuId" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

// POST /customer/api/cart/add
func (cc *CustomerController) AddToCart(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := cc.API.AddToCart(c.Request.Context(), req.MenuID, req.Quantity)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OKMessage(c, "Item berhasil ditambahkan ke keranjang", cart)
}

// PUT /customer/api/cart/update/:menuId?quantity=N
//
// quantity=0 removes the item, same as decrementing past one on the page.
func (cc *CustomerController) UpdateCartItem(c *gin.Context) {
	menuID, err := strconv.ParseInt(c.Param("menuId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	qty, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		resp.BadRequest(c, "invalid quantity")
		return
	}
	cart, err := cc.API.UpdateCartQuantity(c.Request.Context(), menuID, qty)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OKMessage(c, "Quantity berhasil diupdate", cart)
}

// DELETE /customer/api/cart/remove/:menuId
func (cc *CustomerController) RemoveFromCart(c *gin.Context) {
	menuID, err := strconv.ParseInt(c.Param("menuId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	cart, err := cc.API.RemoveFromCart(c.Request.Context(), menuID)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OKMessage(c, "Item berhasil dihapus dari keranjang", cart)
}

// DELETE /customer/api/cart/clear
func (cc *CustomerController) ClearCart(c *gin.Context) {
	if err := cc.API.ClearCart(c.Request.Context()); err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OKMessage(c, "Keranjang berhasil dikosongkan", nil)
}

// ===== Menu =====

// GET /customer/api/menus
func (cc *CustomerController) Menus(c *gin.Context) {
	menus, err := cc.API.Menus(c.Request.Context())
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, menus)
}

// ===== Orders =====

type createOrderReq struct {
	CustomerName string                   `json:"customerName"`
	OrderType    string                   `json:"orderType"`
	Items        []client.CreateOrderItem `json:"items" binding:"required,min=1"`
}

// POST /customer/api/orders
func (cc *CustomerController) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	orderType := entity.OrderType(req.OrderType)
	if orderType == "" {
		orderType = entity.TypeCustomerSelf
	}

	order, err := cc.API.CreateOrder(c.Request.Context(), client.CreateOrderRequest{
		OrderType:    orderType,
		CustomerName: req.CustomerName,
		Items:        req.Items,
	})
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.Created(c, newOrderRow(*order))
}

// GET /customer/api/orders/:orderNumber
func (cc *CustomerController) OrderDetail(c *gin.Context) {
	order, err := cc.API.Order(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, newOrderRow(*order))
}

// GET /customer/api/orders/:orderNumber/qr-code
func (cc *CustomerController) OrderQRCode(c *gin.Context) {
	qr, err := cc.API.OrderQRCode(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, gin.H{"qrCode": qr})
}

// GET /customer/api/orders/:orderNumber/payment-status
func (cc *CustomerController) PaymentStatus(c *gin.Context) {
	order, err := cc.API.Order(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"orderNumber":   order.OrderNumber,
		"paymentStatus": order.PaymentStatus,
		"paid":          order.PaymentStatus == entity.PaymentPaid,
	})
}

// POST /customer/api/orders/:orderNumber/watch-payment
//
// Starts the 10s payment poll for an order awaiting QR confirmation.
// Idempotent per order; the poll stops on its own once payment settles.
func (cc *CustomerController) WatchPayment(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	cc.mu.Lock()
	if cc.watching[orderNumber] {
		cc.mu.Unlock()
		resp.OK(c, gin.H{"watching": true})
		return
	}
	cc.watching[orderNumber] = true
	cc.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), watchTimeout)
		defer cancel()
		defer func() {
			cc.mu.Lock()
			delete(cc.watching, orderNumber)
			cc.mu.Unlock()
		}()

		if _, err := cc.Watcher.Watch(ctx, orderNumber); err != nil {
			log.Printf("payment watch for %s stopped: %v", orderNumber, err)
		}
	}()

	resp.OK(c, gin.H{"watching": true})
}
