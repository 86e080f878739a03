package amqp

import "time"

// Message is the envelope published to RabbitMQ. Payload carries the domain
// event verbatim; Kind tells consumers how to decode it.
type Message struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func NewMessage(kind string, payload any) Message {
	return Message{
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
