package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/pkg/rabbitmq"
)

// StatusPublisher pushes status-change events onto the fanout exchange the
// notification subscriber listens on.
type StatusPublisher struct {
	rmq *rabbitmq.RabbitMQ
}

func NewStatusPublisher(rmq *rabbitmq.RabbitMQ) *StatusPublisher {
	return &StatusPublisher{rmq: rmq}
}

func (p *StatusPublisher) PublishStatusUpdate(ctx context.Context, msg dto.StatusUpdateMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal status update: %w", err)
	}

	if err := p.rmq.PublishMessage(ctx, rabbitmq.StatusExchange, "", body); err != nil {
		return fmt.Errorf("failed to publish status update: %w", err)
	}

	p.rmq.Logger.Debug("", "status_update_published",
		fmt.Sprintf("Status update published for order %d: %s -> %s", msg.OrderID, msg.OldStatus, msg.NewStatus))
	return nil
}
