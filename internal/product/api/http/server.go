package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kennyy02/Samgyupmasaya/internal/config"
	database "github.com/Kennyy02/Samgyupmasaya/internal/product/adapter/db"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/api/http/handle"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/app/services"
	"github.com/Kennyy02/Samgyupmasaya/pkg/db"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type Server struct {
	mux   *http.ServeMux
	srv   *http.Server
	cfg   *config.Config
	mylog *logger.Logger
	pool  *pgxpool.Pool
}

func NewServer(cfg *config.Config, mylog *logger.Logger) *Server {
	return &Server{
		cfg:   cfg,
		mylog: mylog,
		mux:   http.NewServeMux(),
	}
}

func (s *Server) Run() error {
	pool, err := db.ConnectDB(s.cfg.DB, s.mylog)
	if err != nil {
		s.mylog.Error("", "db_connection_failed", "Failed to connect to database", err)
		return err
	}
	s.pool = pool

	s.configure()

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Product.Port),
		Handler: s.mux,
	}

	s.mylog.Info("", "server_started", fmt.Sprintf("Product service listening on port %d", s.cfg.Product.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.mylog.Info("", "graceful_shutdown_started", "Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}

	s.mylog.Info("", "graceful_shutdown_completed", "HTTP server shut down gracefully")
	return nil
}

func (s *Server) configure() {
	categoryRepo := database.NewCategoryRepo(s.pool)
	onlineRepo := database.NewOnlineProductRepo(s.pool, categoryRepo)
	onsiteRepo := database.NewOnsiteProductRepo(s.pool, categoryRepo)

	productService := services.NewProductService(onlineRepo, onsiteRepo, categoryRepo, s.mylog)
	productHandler := handle.NewProductHandler(productService, s.mylog)

	s.mux.Handle("GET /categories", productHandler.Categories())
	s.mux.Handle("GET /analytics/product-counts", productHandler.Counts())
	s.mux.Handle("GET /products/search", productHandler.Search())

	s.mux.Handle("GET /products/{set}", productHandler.List())
	s.mux.Handle("POST /products/{set}", productHandler.Create())
	s.mux.Handle("GET /products/{set}/{id}", productHandler.Get())
	s.mux.Handle("PUT /products/{set}/{id}", productHandler.Update())
	s.mux.Handle("PATCH /products/{set}/{id}", productHandler.DecrementStock())
	s.mux.Handle("DELETE /products/{set}/{id}", productHandler.Delete())
}
