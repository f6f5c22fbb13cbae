package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/configs"
	"github.com/xdranel/Menu-Ordering/entity"
	"github.com/xdranel/Menu-Ordering/middlewares"
	"github.com/xdranel/Menu-Ordering/routes"
	"github.com/xdranel/Menu-Ordering/services"
	"github.com/xdranel/Menu-Ordering/ws"
)

func main() {
	cfg := configs.LoadConfig()

	api := client.New(client.Config{
		BaseURL:    cfg.BackendBaseURL,
		CSRFHeader: cfg.CSRFHeader,
		CSRFToken:  cfg.CSRFToken,
	})

	hub := ws.NewHub()

	// One reactive cell for dashboard refreshes: pushed events and the
	// payment poll both land here, browsers get at most one signal per
	// quiet window.
	refresh := services.NewRefreshCell(250*time.Millisecond, func() {
		hub.Broadcast(ws.TopicDashboard, "refresh")
	})

	live := ws.NewChannel(cfg.SocketURL)
	live.OnOrderUpdate(func(o *entity.Order) {
		hub.Broadcast(ws.TopicOrders, o)
		refresh.Trigger()
	})
	live.OnDashboardRefresh(refresh.Trigger)
	live.OnNotification(func(n entity.Notification) {
		hub.Broadcast(ws.TopicNotifications, n)
	})

	watcher := services.NewPaymentWatcher(api, func(o *entity.Order) {
		hub.Broadcast(ws.TopicOrders, o)
		refresh.Trigger()
	})
	watcher.Interval = cfg.PaymentPollInterval

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.CSRFHeader))
	routes.RegisterRoutes(r, api, hub, live, watcher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: r}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		// Bounded reconnection takes over from here on failures.
		if err := live.Connect(); err != nil {
			log.Printf("initial live connect failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Println("POS gateway running at", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		live.Disconnect()
		refresh.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
