// Package messaging publica los eventos de pedidos en RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-api/internal/application/ordering"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

var _ ordering.EventPublisher = (*RabbitMQPublisher)(nil)

const (
	dialTimeout    = 2 * time.Second
	reconnectDelay = 5 * time.Second
)

// ErrBrokerUnavailable el último intento de reconexión falló y aún no toca reintentar.
var ErrBrokerUnavailable = errors.New("rabbitmq: broker no disponible")

// RabbitMQPublisher publica en un exchange topic durable; la routing key es el tipo de evento.
// Mantiene una conexión y un canal; si el broker los cierra se reabren en el siguiente Publish,
// como mucho una vez cada reconnectDelay.
type RabbitMQPublisher struct {
	url         string
	exchange    string
	log         *logger.Logger
	dialTimeout time.Duration
	now         func() time.Time

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

// NewRabbitMQPublisher conecta y declara el exchange. Falla si el broker no responde.
func NewRabbitMQPublisher(url, exchange string, log *logger.Logger) (*RabbitMQPublisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	p := &RabbitMQPublisher{
		url:         url,
		exchange:    exchange,
		log:         log.Named("rabbitmq"),
		dialTimeout: dialTimeout,
		now:         time.Now,
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect abre conexión y canal y declara el exchange (idempotente). Requiere mu.
func (p *RabbitMQPublisher) connect() error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial:      amqp.DefaultDial(p.dialTimeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: declarar exchange %s: %w", p.exchange, err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

// Publish serializa el evento y lo publica como mensaje persistente.
func (p *RabbitMQPublisher) Publish(ctx context.Context, evt ordering.Event) error {
	body, err := EncodeEvent(evt)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() || p.conn.IsClosed() {
		p.closeLocked()
		if p.now().Before(p.retryAt) {
			return ErrBrokerUnavailable
		}
		if err := p.connect(); err != nil {
			p.retryAt = p.now().Add(reconnectDelay)
			p.log.Warn().Err(err).Time("retry_at", p.retryAt).Msg("reconexión fallida")
			return err
		}
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		string(evt.Type), // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.ID,
			Type:         string(evt.Type),
			Timestamp:    evt.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publicar %s: %w", evt.Type, err)
	}
	p.log.Debug().Str("event", string(evt.Type)).Str("event_id", evt.ID).Msg("evento publicado")
	return nil
}

// Close cierra canal y conexión.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *RabbitMQPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// ── Formato del mensaje ──────────────────────────────────────────────────────

type eventMessage struct {
	ID             string       `json:"id"`
	Type           string       `json:"type"`
	OccurredAt     time.Time    `json:"occurredAt"`
	PreviousStatus string       `json:"previousStatus,omitempty"`
	Order          orderMessage `json:"order"`
}

type orderMessage struct {
	ID          int64              `json:"id"`
	CustomerID  int64              `json:"customerId"`
	Status      string             `json:"status"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Items       []orderItemMessage `json:"items"`
}

type orderItemMessage struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// EncodeEvent cuerpo JSON del mensaje.
func EncodeEvent(evt ordering.Event) ([]byte, error) {
	if evt.Order == nil {
		return nil, fmt.Errorf("rabbitmq: evento %s sin pedido", evt.Type)
	}
	msg := eventMessage{
		ID:             evt.ID,
		Type:           string(evt.Type),
		OccurredAt:     evt.OccurredAt,
		PreviousStatus: string(evt.PreviousStatus),
		Order:          newOrderMessage(evt.Order),
	}
	return json.Marshal(msg)
}

func newOrderMessage(o *entity.Order) orderMessage {
	items := make([]orderItemMessage, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemMessage{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return orderMessage{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Items:       items,
	}
}
