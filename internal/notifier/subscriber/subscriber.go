package subscriber

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
	"github.com/Kennyy02/Samgyupmasaya/pkg/rabbitmq"
)

// Sender delivers one status email.
type Sender interface {
	Send(to string, orderID int64, status string) error
}

// Subscriber consumes status-change events and emails the customer when an
// online order moves to Preparing or Delivered. Delivery failures are logged
// and acknowledged anyway: notification is fire-and-forget and must never
// pile up behind a broken mailbox.
type Subscriber struct {
	rmq    *rabbitmq.RabbitMQ
	sender Sender
	mylog  *logger.Logger
}

func NewSubscriber(rmq *rabbitmq.RabbitMQ, sender Sender, mylog *logger.Logger) *Subscriber {
	return &Subscriber{
		rmq:    rmq,
		sender: sender,
		mylog:  mylog,
	}
}

func (s *Subscriber) Run(ctx context.Context) error {
	msgs, err := s.rmq.Channel.Consume(
		rabbitmq.StatusQueue,      // queue
		"notification-subscriber", // consumer
		false,                     // auto-ack
		false,                     // exclusive
		false,                     // no-local
		false,                     // no-wait
		nil,                       // args
	)
	if err != nil {
		return err
	}

	s.mylog.Info("", "consuming_started", fmt.Sprintf("Consuming from %s", rabbitmq.StatusQueue))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(10)

	for {
		select {
		case <-gctx.Done():
			return g.Wait()
		case msg, ok := <-msgs:
			if !ok {
				waitErr := g.Wait()
				if waitErr != nil {
					return waitErr
				}
				return fmt.Errorf("message channel closed")
			}
			m := msg
			g.Go(func() error {
				s.handle(m)
				return nil
			})
		}
	}
}

func (s *Subscriber) handle(msg amqp.Delivery) {
	if err := s.Process(msg.Body); err != nil {
		s.mylog.Error("", "message_parsing_failed", "Failed to parse status update, dropping", err)
		_ = msg.Nack(false, false) // don't requeue
		return
	}
	_ = msg.Ack(false)
}

// Process parses one status update and sends the email when the new status
// warrants one. Only a malformed message is an error; a failed send is
// logged and swallowed.
func (s *Subscriber) Process(body []byte) error {
	var update dto.StatusUpdateMessage
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	if !notifiableStatus(update.NewStatus) || update.CustomerEmail == "" {
		s.mylog.Debug("", "notification_skipped",
			fmt.Sprintf("No email for order %d (%s)", update.OrderID, update.NewStatus))
		return nil
	}

	if err := s.sender.Send(update.CustomerEmail, update.OrderID, update.NewStatus); err != nil {
		s.mylog.Error("", "email_send_failed",
			fmt.Sprintf("Failed to email %s for order %d", update.CustomerEmail, update.OrderID), err)
		return nil
	}

	s.mylog.Info("", "email_sent",
		fmt.Sprintf("Notified %s: order %d is now %s", update.CustomerEmail, update.OrderID, update.NewStatus))
	return nil
}

func notifiableStatus(status string) bool {
	return status == "Preparing" || status == "Delivered"
}
