package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"staysia/internal/app/commands"
	appproperties "staysia/internal/app/handlers/properties"
	"staysia/internal/app/policies"
	"staysia/internal/infra/broker/kafka"
	"staysia/internal/infra/cache/redis"
	"staysia/internal/infra/config"
	"staysia/internal/infra/db/mongo"
	"staysia/internal/infra/inbox"
	"staysia/internal/infra/obs"
	"staysia/internal/infra/outbox"
	"staysia/internal/infra/projector"
)

const detailsConsumer = "details-projector"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev", "info").Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if cfg.MongoURI == "" {
		return errors.New("MONGO_URI is required for the outbox relay")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required for the outbox relay")
	}

	client, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() { _ = client.Close(context.Background()) }()

	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = "staysia-worker"

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, saramaCfg)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer producer.Close()

	relay := &outbox.Worker{
		Store:       outbox.NewStore(client.DB),
		Producer:    producer,
		Logger:      logger.With("component", "outbox"),
		Interval:    cfg.OutboxPollInterval,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Source:      outbox.DefaultSource,
		ID:          "worker-" + uuid.NewString(),
		Backoff:     cfg.RetryBackoff,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("outbox relay starting", "worker_id", relay.ID, "brokers", cfg.KafkaBrokers)
		if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errs <- fmt.Errorf("outbox relay: %w", err)
			cancel()
		}
	}()

	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer redisClient.Close()

		consumer, err := newDetailsConsumer(cfg, client, redis.NewDetailsCache(redisClient, cfg.DetailsCacheTTL), logger)
		if err != nil {
			return err
		}
		defer consumer.Close()

		topics := []string{outbox.Topic(cfg.KafkaTopicPrefix, "property")}
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("details projector starting", "topics", topics, "group", cfg.KafkaGroupID)
			if err := consumer.Run(ctx, topics); err != nil && !errors.Is(err, context.Canceled) {
				errs <- fmt.Errorf("details projector: %w", err)
				cancel()
			}
		}()
	} else {
		logger.Warn("REDIS_URL not set, details projector disabled")
	}

	wg.Wait()
	close(errs)
	return errors.Join(drain(errs)...)
}

func newDetailsConsumer(cfg config.Config, client *mongo.Client, cache policies.DetailsCache, logger *slog.Logger) (*kafka.Consumer, error) {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, appproperties.InvalidateDetailsCommand{}.Key(), &appproperties.InvalidateDetailsHandler{
		Cache:  cache,
		Logger: logger,
	})
	handler := &projector.DetailsInvalidator{
		Bus:    bus,
		Inbox:  inbox.NewStore(client.DB, detailsConsumer),
		Logger: logger.With("component", detailsConsumer),
	}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, sarama.NewConfig(), handler)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

func drain(errs <-chan error) []error {
	var out []error
	for err := range errs {
		out = append(out, err)
	}
	return out
}
