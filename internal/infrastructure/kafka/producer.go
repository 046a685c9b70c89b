package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/segmentio/kafka-go"
)

// EventTypeHeader carries the event type so consumers can skip payloads
// they do not handle without decoding them.
const EventTypeHeader = "event_type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes order events. It implements order.Publisher.
type Producer struct {
	writer messageWriter
	now    func() time.Time
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer, now: time.Now}
}

// Publish writes event keyed by the order id so every change of one order
// lands on the same partition.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  p.now(),
	}
	if e, ok := event.(order.Event); ok {
		msg.Headers = []kafka.Header{{Key: EventTypeHeader, Value: []byte(e.EventType)}}
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
