package kafka

import (
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicEventCreated = "lpt.events.created"
	TopicEventUpdated = "lpt.events.updated"
	TopicEventDeleted = "lpt.events.deleted"
)

// ChangeTopics lists every topic the change feed uses, in the order
// consumers subscribe to them.
func ChangeTopics() []string {
	return []string{TopicEventCreated, TopicEventUpdated, TopicEventDeleted}
}

// TopicForAction maps a mutation action to its topic. Unknown actions
// fall back to the updated topic.
func TopicForAction(action string) string {
	switch action {
	case "created":
		return TopicEventCreated
	case "deleted":
		return TopicEventDeleted
	default:
		return TopicEventUpdated
	}
}

// EnsureTopicsExist creates the given topics if they don't already exist.
func EnsureTopicsExist(brokers []string, topics []string) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", controller.Host)
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	for _, topic := range topics {
		topicConfigs := []kafka.TopicConfig{
			{
				Topic:             topic,
				NumPartitions:     1,
				ReplicationFactor: 1,
			},
		}

		err = controllerConn.CreateTopics(topicConfigs...)
		if err != nil {
			if err.Error() == "kafka server: topic already exists" {
				log.Printf("Topic %s already exists", topic)
				continue
			}
			log.Printf("Error creating topic %s: %v", topic, err)
			// Keep going so one bad topic doesn't block the rest
		} else {
			log.Printf("Created topic: %s", topic)
		}
	}

	// Give the broker a moment to propagate the new topics
	time.Sleep(1 * time.Second)
	return nil
}

// CreateTopicIfNotExists creates a single topic if it doesn't exist.
func CreateTopicIfNotExists(brokers []string, topic string) error {
	return EnsureTopicsExist(brokers, []string{topic})
}
