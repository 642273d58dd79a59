// Package events реализует публикацию доменных событий приложения
// (создание контента, смена статуса кампании, планирование публикации)
// в RabbitMQ. Публикация выполняется по принципу "best effort":
// недоступность брокера не должна ронять пользовательскую операцию,
// решение об этом принимает вызывающий сервис.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/marketing-hub/internal/lib/rabbitmq"
)

// Ключи маршрутизации доменных событий.
const (
	ContentCreated        = "content.created"
	CampaignStatusChanged = "campaign.status_changed"
	PostScheduled         = "post.scheduled"
)

// Event — конверт доменного события.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher публикует события в обменник RabbitMQ.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewPublisher объявляет обменник и очереди событий и возвращает Publisher.
func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	const op = "events.NewPublisher"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range rabbitmq.GetEventQueues() {
		if _, err = ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &Publisher{ch: ch, exchange: exchange}, nil
}

// Publish отправляет событие указанного типа для пользователя userID.
func (p *Publisher) Publish(eventType string, userID int64, payload any) error {
	event := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	return rabbitmq.PublishMessage(p.ch, p.exchange, eventType, event)
}

// Close закрывает канал публикации.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
