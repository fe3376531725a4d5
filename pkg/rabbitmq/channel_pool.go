package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ikkim/storefeed/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPoolExhausted is returned when every pooled channel is in use
var ErrPoolExhausted = errors.New("no channels available in pool")

// Channel is the part of *amqp.Channel the publisher needs
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// ChannelPool hands out pre-opened channels on one connection. Every channel
// declares the configured queues as durable before it is pooled.
type ChannelPool struct {
	conn     *amqp.Connection
	channels chan Channel
	mu       sync.Mutex
	closed   bool
	queues   []string
}

func NewChannelPool(url string, size int, queues ...string) (*ChannelPool, error) {
	if size < 1 {
		size = 1
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	pool := &ChannelPool{
		conn:     conn,
		channels: make(chan Channel, size),
		queues:   queues,
	}

	for i := 0; i < size; i++ {
		ch, err := pool.createChannel()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}

	logger.Info("RabbitMQ channel pool created", map[string]interface{}{
		"size":   size,
		"queues": queues,
	})
	return pool, nil
}

func (p *ChannelPool) createChannel() (Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, queue := range p.queues {
		// durable, not auto-deleted, not exclusive, wait for the broker
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
	}
	return ch, nil
}

// GetChannel takes a channel from the pool, reopening it if the broker closed it
func (p *ChannelPool) GetChannel() (Channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, errors.New("channel pool is closed")
		}
		if ch.IsClosed() {
			return p.createChannel()
		}
		return ch, nil
	default:
		return nil, ErrPoolExhausted
	}
}

// ReturnChannel puts ch back, closing it when the pool is full or shut down
func (p *ChannelPool) ReturnChannel(ch Channel) {
	if ch == nil || ch.IsClosed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		ch.Close()
		return
	}
	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

// Close closes every pooled channel and the connection
func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	logger.Info("RabbitMQ channel pool closed")
}
