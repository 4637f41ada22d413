package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"lpt-event/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer}
}

// Publish writes a single message to the given topic.
func (p *Producer) Publish(topic, key string, value []byte) error {
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
		},
	)
}

// PublishEventChange streams a mutation notification so client caches
// can evict the affected keys. Keyed by event id to keep changes to
// one event in order.
func (p *Producer) PublishEventChange(change models.EventChange) error {
	msgBytes, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return p.Publish(TopicForAction(change.Action), strconv.FormatInt(change.EventID, 10), msgBytes)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
