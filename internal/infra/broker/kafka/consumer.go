package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

type MessageHandler interface {
	Handle(ctx context.Context, msg *sarama.ConsumerMessage) error
}

// Consumer runs a consumer group. Failed messages are retried up to MaxAttempts, then logged and skipped.
type Consumer struct {
	group       sarama.ConsumerGroup
	handler     MessageHandler
	Logger      *slog.Logger
	MaxAttempts int
	Backoff     time.Duration
}

func NewConsumer(brokers []string, groupID string, cfg *sarama.Config, handler MessageHandler) (*Consumer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Version = sarama.V2_5_0_0
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	g, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}
	return &Consumer{group: g, handler: handler, MaxAttempts: 3, Backoff: time.Second}, nil
}

func (c *Consumer) Run(ctx context.Context, topics []string) error {
	h := consumerGroupHandler{consumer: c}
	for {
		if err := c.group.Consume(ctx, topics, h); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

func (c *Consumer) handle(ctx context.Context, msg *sarama.ConsumerMessage) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = c.handler.Handle(ctx, msg); err == nil {
			return
		}
		if i+1 < attempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.Backoff):
			}
		}
	}
	if c.Logger != nil {
		c.Logger.Error("kafka message dropped",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
	}
}

type consumerGroupHandler struct {
	consumer *Consumer
}

func (h consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h consumerGroupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.consumer.handle(sess.Context(), message)
		if sess.Context().Err() != nil {
			return nil
		}
		sess.MarkMessage(message, "")
	}
	return nil
}
