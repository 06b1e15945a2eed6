package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/yash-jivani/DevNetworks/internal/config"
	domain "github.com/yash-jivani/DevNetworks/internal/domain/event"
)

const (
	TopicAccountEvents = "account.events"
	TopicProfileEvents = "profile.events"
)

type KafkaProducerClient struct {
	AccountEventsWriter *kafka.Writer
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	accountWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicAccountEvents,
		Balancer: &kafka.LeastBytes{},
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		AccountEventsWriter: accountWriter,
		ProfileEventsWriter: profileWriter,
	}, nil
}

func (c *KafkaProducerClient) publish(ctx context.Context, w *kafka.Writer, msg domain.Message) error {
	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.UserID),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishAccountEvent(ctx context.Context, msg domain.Message) error {
	return c.publish(ctx, c.AccountEventsWriter, msg)
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, msg domain.Message) error {
	return c.publish(ctx, c.ProfileEventsWriter, msg)
}

func (c *KafkaProducerClient) Close() {
	if c.AccountEventsWriter != nil {
		c.AccountEventsWriter.Close()
	}
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
}
