package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kennyy02/Samgyupmasaya/internal/config"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/adapter/broker"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/adapter/catalog"
	database "github.com/Kennyy02/Samgyupmasaya/internal/order/adapter/db"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/adapter/directory"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/api/http/handle"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/services"
	"github.com/Kennyy02/Samgyupmasaya/pkg/db"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
	"github.com/Kennyy02/Samgyupmasaya/pkg/rabbitmq"
)

type Server struct {
	mux   *http.ServeMux
	srv   *http.Server
	cfg   *config.Config
	mylog *logger.Logger
	pool  *pgxpool.Pool
	rmq   *rabbitmq.RabbitMQ
}

func NewServer(cfg *config.Config, mylog *logger.Logger) *Server {
	return &Server{
		cfg:   cfg,
		mylog: mylog,
		mux:   http.NewServeMux(),
	}
}

// Run connects the dependencies, registers routes and blocks serving HTTP
// until the server stops.
func (s *Server) Run() error {
	pool, err := db.ConnectDB(s.cfg.DB, s.mylog)
	if err != nil {
		s.mylog.Error("", "db_connection_failed", "Failed to connect to database", err)
		return err
	}
	s.pool = pool

	rmq, err := rabbitmq.ConnectRabbitMQ(s.cfg.RMQ, s.mylog)
	if err != nil {
		s.mylog.Error("", "mb_connection_failed", "Failed to connect to message broker", err)
		return err
	}
	s.rmq = rmq

	s.configure()

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Order.Port),
		Handler: s.mux,
	}

	s.mylog.Info("", "server_started", fmt.Sprintf("Order service listening on port %d", s.cfg.Order.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully and releases its connections.
func (s *Server) Stop(ctx context.Context) error {
	s.mylog.Info("", "graceful_shutdown_started", "Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("", "graceful_shutdown_failed", "Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.pool != nil {
		s.pool.Close()
		s.mylog.Info("", "db_closed", "Database pool closed")
	}
	if s.rmq != nil {
		s.rmq.Close()
		s.mylog.Info("", "mb_closed", "Message broker closed")
	}

	s.mylog.Info("", "graceful_shutdown_completed", "HTTP server shut down gracefully")
	return nil
}

func (s *Server) configure() {
	orderRepo := database.NewOrderRepo(s.pool)
	catalogClient := catalog.New(s.cfg.Order.CatalogURL, s.mylog)
	directoryClient := directory.New(s.cfg.Order.DirectoryURL, s.mylog)
	publisher := broker.NewStatusPublisher(s.rmq)

	orderService := services.NewOrderService(orderRepo, catalogClient, directoryClient, publisher, s.mylog)
	orderHandler := handle.NewOrderHandler(orderService, s.mylog)

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Order Service is running.")
	})

	s.mux.Handle("POST /orders/online", orderHandler.CreateOnline())
	s.mux.Handle("POST /orders/onsite", orderHandler.CreateOnsite())
	s.mux.Handle("GET /orders/online", orderHandler.ListOnline())
	s.mux.Handle("GET /orders/onsite", orderHandler.ListOnsite())
	s.mux.Handle("GET /orders/search", orderHandler.Search())
	s.mux.Handle("PUT /orders/online/{id}/status", orderHandler.UpdateOnlineStatus())
	s.mux.Handle("PUT /orders/onsite/{id}/status", orderHandler.UpdateOnsiteStatus())
	s.mux.Handle("GET /orders/online/status/{customerName}", orderHandler.OnlineStatusByCustomer())
	s.mux.Handle("GET /orders/onsite/status/{tableId}", orderHandler.OnsiteStatusByTable())

	s.mux.Handle("GET /analytics/summary", orderHandler.Summary())
	s.mux.Handle("GET /analytics/online-products-sold", orderHandler.OnlineProductsSold())
	s.mux.Handle("GET /analytics/onsite-products-sold", orderHandler.OnsiteProductsSold())
}
