package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/segmentio/kafka-go"

	"lpt-event/internal/models"
)

type Consumer struct {
	reader *kafka.Reader
}

// NewChangeConsumer creates a consumer-group reader over every change
// feed topic. groupID should be unique per client instance so each
// instance sees every change.
func NewChangeConsumer(brokers []string, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupTopics: ChangeTopics(),
		GroupID:     groupID,
		MinBytes:    10e3, // 10KB
		MaxBytes:    10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

// Start consumes change messages until the context is cancelled or the
// reader is closed, feeding each decoded change to handler.
func (c *Consumer) Start(ctx context.Context, handler func(change models.EventChange)) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			// io.EOF means the reader was closed
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			log.Printf("Error reading change message: %v", err)
			continue
		}

		var change models.EventChange
		if err := json.Unmarshal(msg.Value, &change); err != nil {
			log.Printf("Failed to unmarshal change message: %v", err)
			continue
		}

		handler(change)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
