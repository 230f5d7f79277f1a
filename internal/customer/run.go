package customer

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/Kennyy02/Samgyupmasaya/internal/config"
	customerhttp "github.com/Kennyy02/Samgyupmasaya/internal/customer/api/http"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

func Run(ctx context.Context, mylog *logger.Logger, args []string) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := flag.NewFlagSet("customer-service", flag.ContinueOnError)
	configPath := fs.String("config-path", "config.yaml", "path to yaml config")
	port := fs.Int("port", 0, "override the configured port")
	if err := fs.Parse(args); err != nil {
		return errors.New("cannot parse arguments")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		mylog.Error("", "config_load_failed", "Failed to load config", err)
		return err
	}
	if *port != 0 {
		cfg.Customer.Port = *port
	}

	server := customerhttp.NewServer(cfg, mylog)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- server.Run()
	}()

	select {
	case <-newCtx.Done():
		mylog.Info("", "shutdown_signal_received", "Shutdown signal received")
		return server.Stop(context.Background())
	case err := <-runErrCh:
		if err != nil {
			mylog.Error("", "customer_service_failed", "Server failed unexpectedly", err)
			return err
		}
		mylog.Info("", "server_stopped", "Server exited normally")
		return nil
	}
}
