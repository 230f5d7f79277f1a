package notifier

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/Kennyy02/Samgyupmasaya/internal/config"
	"github.com/Kennyy02/Samgyupmasaya/internal/notifier/mailer"
	"github.com/Kennyy02/Samgyupmasaya/internal/notifier/subscriber"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
	"github.com/Kennyy02/Samgyupmasaya/pkg/rabbitmq"
)

// Run starts the notification subscriber and blocks until a shutdown signal
// arrives or consuming fails.
func Run(ctx context.Context, mylog *logger.Logger, args []string) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := flag.NewFlagSet("notification-subscriber", flag.ContinueOnError)
	configPath := fs.String("config-path", "config.yaml", "path to yaml config")
	if err := fs.Parse(args); err != nil {
		return errors.New("cannot parse arguments")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		mylog.Error("", "config_load_failed", "Failed to load config", err)
		return err
	}

	rmq, err := rabbitmq.ConnectRabbitMQ(cfg.RMQ, mylog)
	if err != nil {
		mylog.Error("", "mb_connection_failed", "Failed to connect to message broker", err)
		return err
	}
	defer rmq.Close()

	sub := subscriber.NewSubscriber(rmq, mailer.New(cfg.Mail, mylog), mylog)

	if err := sub.Run(newCtx); err != nil && !errors.Is(err, context.Canceled) {
		mylog.Error("", "subscriber_failed", "Notification subscriber stopped with error", err)
		return err
	}
	mylog.Info("", "subscriber_stopped", "Notification subscriber shut down gracefully")
	return nil
}
