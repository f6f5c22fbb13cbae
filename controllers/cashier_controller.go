package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/entity"
	"github.com/xdranel/Menu-Ordering/pkg/resp"
	"github.com/xdranel/Menu-Ordering/services"
	"github.com/xdranel/Menu-Ordering/ws"
)

type CashierController struct {
	API       *client.Client
	Dashboard *services.DashboardService
	Hub       *ws.Hub
	Live      *ws.Channel
}

func NewCashierController(api *client.Client, dash *services.DashboardService, hub *ws.Hub, live *ws.Channel) *CashierController {
	return &CashierController{API: api, Dashboard: dash, Hub: hub, Live: live}
}

// orderRow decorates an order with its derived display fields so no page
// ever assembles action sets or recomputes tax on its own.
type orderRow struct {
	entity.Order
	Tax         float64              `json:"tax"`
	FinalAmount float64              `json:"finalAmount"`
	Actions     []entity.OrderAction `json:"actions"`
}

func newOrderRow(o entity.Order) orderRow {
	return orderRow{
		Order:       o,
		Tax:         o.Tax(),
		FinalAmount: o.FinalAmount(),
		Actions:     o.Actions(),
	}
}

// GET /cashier/api/dashboard/stats
func (cc *CashierController) DashboardStats(c *gin.Context) {
	stats, err := cc.Dashboard.Stats(c.Request.Context())
	if err != nil {
		writeBackendError(c, err)
		return
	}
	resp.OK(c, stats)
}

// GET /cashier/api/orders?range=today|all&status=&payment=
func (cc *CashierController) Orders(c *gin.Context) {
	var (
		orders []entity.Order
		err    error
	)
	if c.DefaultQuery("range", "today") == "all" {
		orders, err = cc.API.Orders(c.Request.Context())
	} else {
		orders, err = cc.API.TodayOrders(c.Request.Context())
	}
	if err != nil {
		writeBackendError(c, err)
		return
	}

	statusFilter := c.Query("status")
	paymentFilter := c.Query("payment")

	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		if statusFilter != "" && statusFilter != "all" && string(o.Status) != statusFilter {
			continue
		}
		if paymentFilter != "" && paymentFilter != "all" &&
			string(o.PaymentStatus) != paymentFilter && string(o.PaymentMethod) != paymentFilter {
			continue
		}
		rows = append(rows, newOrderRow(o))
	}
	resp.OK(c, rows)
}

// PUT /cashier/api/orders/:id/status?status=X
//
// The backend decides whether the transition is legal. On rejection
// nothing is mutated here; the server's message goes back as-is.
func (cc *CashierController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	target, err := entity.ParseOrderStatus(c.Query("status"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := cc.API.UpdateOrderStatus(c.Request.Context(), id, target)
	if err != nil {
		writeBackendError(c, err)
		return
	}

	cc.broadcastOrder(order)
	resp.OKMessage(c, "Pesanan berhasil diupdate", newOrderRow(*order))
}

type submitPaymentReq struct {
	OrderNumber   string  `json:"orderNumber" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	CashAmount    float64 `json:"cashAmount"`
	QRData        string  `json:"qrData"`
}

// POST /cashier/api/payments
func (cc *CashierController) SubmitPayment(c *gin.Context) {
	var req submitPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	method, err := entity.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	// Final amount is derived from the live order; never trusted from the page.
	order, err := cc.API.Order(c.Request.Context(), req.OrderNumber)
	if err != nil {
		writeBackendError(c, err)
		return
	}

	payment, err := cc.API.SubmitPayment(c.Request.Context(), client.PaymentRequest{
		OrderNumber: req.OrderNumber,
		Method:      method,
		FinalAmount: order.FinalAmount(),
		CashAmount:  req.CashAmount,
		QRData:      req.QRData,
	})
	if err != nil {
		var short *client.InsufficientCashError
		if errors.As(err, &short) || errors.Is(err, client.ErrMissingQRCode) {
			resp.BadRequest(c, err.Error())
			return
		}
		writeBackendError(c, err)
		return
	}

	// The payable order just changed; re-fetch so listings and other
	// clients see the post-payment state.
	updated, err := cc.API.Order(c.Request.Context(), req.OrderNumber)
	if err == nil {
		cc.broadcastOrder(updated)
	}

	resp.OKMessage(c, "Pembayaran berhasil", payment)
}

// broadcastOrder pushes a changed order to the browsers on this gateway
// and to the backend feed so other connected clients refresh too.
func (cc *CashierController) broadcastOrder(o *entity.Order) {
	cc.Hub.Broadcast(ws.TopicOrders, newOrderRow(*o))
	cc.Hub.Broadcast(ws.TopicDashboard, "refresh")
	// Publishing upstream is best effort; the REST call already succeeded.
	if err := cc.Live.SendOrderUpdate(o); err != nil {
		log.Printf("live publish failed: %v", err)
	}
}
