package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/controllers"
	"github.com/xdranel/Menu-Ordering/services"
	"github.com/xdranel/Menu-Ordering/ws"
)

func RegisterRoutes(r *gin.Engine, api *client.Client, hub *ws.Hub, live *ws.Channel, watcher *services.PaymentWatcher) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"success": true}) })

	// Controllers
	cashierCtrl := controllers.NewCashierController(api, services.NewDashboardService(api), hub, live)
	customerCtrl := controllers.NewCustomerController(api, watcher)
	reportCtrl := controllers.NewReportController(api, services.NewReportService(api))

	// Cashier terminal
	cashier := r.Group("/cashier")
	{
		cashier.GET("/api/dashboard/stats", cashierCtrl.DashboardStats)
		cashier.GET("/api/orders", cashierCtrl.Orders)
		cashier.PUT("/api/orders/:id/status", cashierCtrl.UpdateOrderStatus)
		cashier.POST("/api/payments", cashierCtrl.SubmitPayment)

		cashier.GET("/api/reports/sales", reportCtrl.SalesReport)
		cashier.GET("/api/reports/export", reportCtrl.ExportReport)
		cashier.GET("/api/invoices", reportCtrl.Invoices)
		cashier.GET("/reports/view", reportCtrl.SalesReportHTML)
		cashier.GET("/invoices/:invoiceNumber/print", reportCtrl.PrintInvoice)
	}

	// Customer self-service
	customer := r.Group("/customer")
	{
		customer.GET("/api/menus", customerCtrl.Menus)

		customer.GET("/api/cart", customerCtrl.Cart)
		customer.GET("/api/cart/count", customerCtrl.CartCount)
		customer.POST("/api/cart/add", customerCtrl.AddToCart)
		customer.PUT("/api/cart/update/:menuId", customerCtrl.UpdateCartItem)
		customer.DELETE("/api/cart/remove/:menuId", customerCtrl.RemoveFromCart)
		customer.DELETE("/api/cart/clear", customerCtrl.ClearCart)

		customer.POST("/api/orders", customerCtrl.CreateOrder)
		customer.GET("/api/orders/:orderNumber", customerCtrl.OrderDetail)
		customer.GET("/api/orders/:orderNumber/qr-code", customerCtrl.OrderQRCode)
		customer.GET("/api/orders/:orderNumber/payment-status", customerCtrl.PaymentStatus)
		customer.POST("/api/orders/:orderNumber/watch-payment", customerCtrl.WatchPayment)
	}

	// Live updates for the pages served by this gateway
	r.GET("/ws/:topic", hub.HandleWebSocket)
}
