package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"

	"example.com/signup/internal/observability"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes roster events to a single topic, keyed by activity name so that
// changes to one roster stay ordered within a partition.
type KafkaPublisher struct {
	topic     string
	newWriter func() messageWriter

	mu     sync.Mutex
	writer messageWriter
}

// NewKafkaPublisher creates a KafkaPublisher. The writer is created on first publish.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		topic: topic,
		newWriter: func() messageWriter {
			return &kafka.Writer{
				Addr:         kafka.TCP(brokers...),
				Topic:        topic,
				Balancer:     &kafka.Hash{},
				RequiredAcks: kafka.RequireAll,
				Compression:  kafka.Snappy,
				Async:        false,
			}
		},
	}
}

// Publish encodes evt as JSON and writes it synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, evt RosterChanged) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode roster event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Activity),
		Value: body,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
			{Key: "event_id", Value: []byte(evt.EventID)},
		},
	}
	if err := p.writerOnce().WriteMessages(ctx, msg); err != nil {
		observability.RecordPublishFailure(p.topic)
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) writerOnce() messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		p.writer = p.newWriter()
	}
	return p.writer
}

// Close releases the underlying writer, if one was created.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}
