// Package publish announces screening decisions on an AMQP exchange.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/streadway/amqp"

	"github.com/spigell/resume-screener/internal/report"
)

const (
	DefaultExchange = "screening_decisions"
	routingPrefix   = "screening."
	contentType     = "application/json"
)

// Event is the message body of a published decision.
type Event struct {
	ScreeningID string    `json:"screening_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Score       int       `json:"score"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewEvent captures the decision of r at the given time.
func NewEvent(r *report.ScreeningReport, at time.Time) Event {
	sel := r.Selection()
	return Event{
		ScreeningID: r.ID.String(),
		Name:        sel.Name,
		Role:        sel.Role,
		Score:       sel.Score,
		Status:      sel.Status,
		Timestamp:   at.UTC(),
	}
}

// RoutingKey is screening.<status> with the status lower-cased and spaces
// replaced by underscores, e.g. screening.not_selected.
func (e Event) RoutingKey() string {
	return routingPrefix + strings.ReplaceAll(strings.ToLower(e.Status), " ", "_")
}

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQP publishes events to a durable topic exchange.
type AMQP struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewAMQP dials url and declares the exchange.
func NewAMQP(url, exchange string) (*AMQP, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	p, err := newAMQP(ch, exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

func newAMQP(ch channel, exchange string) (*AMQP, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	return &AMQP{ch: ch, exchange: exchange}, nil
}

// Publish sends e as a persistent JSON message.
func (p *AMQP) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.ch.Publish(
		p.exchange,
		e.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  contentType,
			DeliveryMode: amqp.Persistent,
			MessageId:    e.ScreeningID,
			Timestamp:    e.Timestamp,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish to %q: %w", p.exchange, err)
	}

	return nil
}

func (p *AMQP) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
