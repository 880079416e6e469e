// Package eventsvc publishes revalidation events to Kafka so other instances can drop their views.
package eventsvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/trezcool/classdesk/core"
)

// RevalidationEvent is the value of every message sent on the revalidation topic.
type RevalidationEvent struct {
	Paths  []string  `json:"paths"`
	Source string    `json:"source"`
	At     time.Time `json:"at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	topic  string
	source string
}

var _ core.Revalidator = (*Publisher)(nil)

func NewPublisher(conf *core.Config) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(conf.Kafka.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	return &Publisher{writer: writer, topic: conf.Kafka.Topic, source: conf.AppName}
}

func (p *Publisher) Revalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	data, err := json.Marshal(RevalidationEvent{Paths: paths, Source: p.source, At: time.Now().UTC()})
	if err != nil {
		return errors.Wrap(err, "marshalling revalidation event")
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(paths[0]),
		Value: data,
	})
	return errors.Wrap(err, "publishing revalidation event")
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
