package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/quickbite/backend/models"
)

// Order event names.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderCancelled     = "order.cancelled"
	OrderDelivered     = "order.delivered"
)

type OrderEvent struct {
	Event         string    `json:"event"`
	OrderID       uint      `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerID    uint      `json:"customer_id"`
	SellerID      uint      `json:"seller_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalPrice    float64   `json:"total_price"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher emits order lifecycle events to a fanout exchange. A nil
// Publisher is valid and drops every event, so the service runs without
// a broker.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func Connect(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishOrderEvent(event string, order *models.Order) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(OrderEvent{
		Event:         event,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		SellerID:      order.SellerID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalPrice:    order.TotalPrice,
		Timestamp:     time.Now(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		"", // fanout ignores routing keys
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
