package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Lifecycle event types published to the campaign_events queue.
const (
	EventBrandArchived   = "brand.archived"
	EventBrandRestored   = "brand.restored"
	EventBrandDeleted    = "brand.deleted"
	EventCampaignCreated = "campaign.created"
	EventCampaignUpdated = "campaign.updated"
	EventCampaignDeleted = "campaign.deleted"
)

const eventQueueName = "campaign_events"

// EventService publishes lifecycle events over RabbitMQ so downstream
// collaborators (reporting, notifications) can react. The service is
// optional: a nil *EventService is safe to publish on.
type EventService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewEventService() (*EventService, error) {
	host := getEnv("RABBITMQ_HOST", "localhost")
	port := getEnv("RABBITMQ_PORT", "5672")
	user := getEnv("RABBITMQ_USER", "guest")
	pass := getEnv("RABBITMQ_PASS", "guest")

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		eventQueueName, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logrus.Info("RabbitMQ event service initialized")
	return &EventService{conn: conn, channel: channel}, nil
}

// Publish sends one lifecycle event. Failures are logged and swallowed; a
// broker outage must never fail the originating request.
func (s *EventService) Publish(eventType string, payload map[string]interface{}) {
	if s == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"type":        eventType,
		"payload":     payload,
		"occurred_at": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logrus.Warnf("Failed to marshal %s event: %v", eventType, err)
		return
	}

	err = s.channel.Publish(
		"",             // exchange
		eventQueueName, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		logrus.Warnf("Failed to publish %s event: %v", eventType, err)
		return
	}

	logrus.Debugf("Published event %s", eventType)
}

// Close closes the RabbitMQ connection
func (s *EventService) Close() error {
	if s == nil {
		return nil
	}
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
