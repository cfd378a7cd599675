package queue

import (
	"fmt"

	"go.uber.org/zap"
)

// Subjects published by the trip and payment services. Downstream consumers
// (analytics, notifications) subscribe to these.
const (
	SubjectTripBooked       = "trips.booked"
	SubjectTripStarted      = "trips.started"
	SubjectTripEnded        = "trips.ended"
	SubjectPaymentCompleted = "payments.completed"
	SubjectPaymentFailed    = "payments.failed"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// New builds the configured broker adapter. Provider is "nats" or "rabbitmq".
func New(provider, url string, log *zap.Logger) (MessageQueue, error) {
	switch provider {
	case "nats", "":
		return NewNATSQueue(url, log)
	case "rabbitmq":
		return NewRabbitMQQueue(url, log)
	default:
		return nil, fmt.Errorf("unknown queue provider: %q", provider)
	}
}
