package amqp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/event_bus"
	"github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

const (
	publishTimeout   = 5 * time.Second
	defaultQueueSize = 256
)

var ErrQueueFull = errors.New("notification queue is full")

// Channel is the part of *amqp091.Channel the client publishes through.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Client forwards dashboard events to a topic exchange so other services can
// react to layout and finance data changes.
//
// Bus handlers only enqueue; Run publishes to the broker. A slow or
// unreachable broker never holds up the request that raised the event.
type Client struct {
	conn       *amqp091.Connection
	channel    Channel
	exchange   string
	routingKey string
	queue      chan Notification
}

func NewClient(cfg config.AMQP) (*Client, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	client := NewClientWithChannel(channel, cfg.Exchange, cfg.RoutingKey, cfg.QueueSize)
	client.conn = conn
	return client, nil
}

// NewClientWithChannel builds a client on an already open channel.
func NewClientWithChannel(channel Channel, exchange, routingKey string, queueSize int) *Client {
	if queueSize < 1 {
		queueSize = defaultQueueSize
	}
	return &Client{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		queue:      make(chan Notification, queueSize),
	}
}

// Forward subscribes the client to the bus events it publishes to the broker.
func (c *Client) Forward(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.LayoutUpdated, func(e event_bus.TypedEvent[event_bus.DashboardLayoutUpdated]) error {
		return c.enqueue(NewLayoutNotification(e.Payload, e.Timestamp))
	})
	event_bus.SubscribeTyped(bus, event_bus.FinanceDataChanged, func(e event_bus.TypedEvent[event_bus.FinanceDataChange]) error {
		return c.enqueue(NewChangeNotification(e.Payload, e.Timestamp))
	})
}

func (c *Client) enqueue(n Notification) error {
	select {
	case c.queue <- n:
		return nil
	default:
		log.WithFields(log.Fields{"type": n.Type, "user": n.UserUid}).Warn("Dropping dashboard notification, queue is full")
		return ErrQueueFull
	}
}

// Run publishes queued notifications until ctx is done, then flushes what is
// still queued.
func (c *Client) Run(ctx context.Context) {
	for {
		select {
		case n := <-c.queue:
			c.publishQueued(n)
		case <-ctx.Done():
			c.flush()
			return
		}
	}
}

func (c *Client) flush() {
	for {
		select {
		case n := <-c.queue:
			c.publishQueued(n)
		default:
			return
		}
	}
}

func (c *Client) publishQueued(n Notification) {
	if err := c.Publish(context.Background(), n); err != nil {
		log.WithFields(log.Fields{"type": n.Type, "user": n.UserUid}).Errorf("Failed to publish dashboard notification: %v", err)
	}
}

// RoutingKey is the configured prefix followed by the notification type.
func (c *Client) RoutingKey(n Notification) string {
	if c.routingKey == "" {
		return n.Type
	}
	return c.routingKey + "." + n.Type
}

// Publish sends n to the broker right away, waiting at most publishTimeout.
func (c *Client) Publish(ctx context.Context, n Notification) error {
	body, err := n.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := c.RoutingKey(n)
	err = c.channel.PublishWithContext(
		ctx,
		c.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    n.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	log.WithFields(log.Fields{
		"type":     n.Type,
		"user":     n.UserUid,
		"exchange": c.exchange,
		"key":      key,
	}).Debug("Published dashboard notification")
	return nil
}

func (c *Client) Close() error {
	if closer, ok := c.channel.(interface{ Close() error }); ok {
		closer.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
