package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ikkim/storefeed/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// ChannelSource lends channels to the publisher; satisfied by *ChannelPool
type ChannelSource interface {
	GetChannel() (Channel, error)
	ReturnChannel(ch Channel)
}

type Publisher struct {
	channels ChannelSource
}

func NewPublisher(channels ChannelSource) *Publisher {
	return &Publisher{channels: channels}
}

// PublishJSON sends v as a persistent JSON message to queue through the default exchange
func (p *Publisher) PublishJSON(ctx context.Context, queue string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ch, err := p.channels.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.channels.ReturnChannel(ch)

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}

	logger.Debug("Published message", map[string]interface{}{
		"queue": queue,
		"bytes": len(body),
	})
	return nil
}
