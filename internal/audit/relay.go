package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"remit/internal/platform/config"
)

// Producer publishes one batch of outbox records to the event stream. The
// franz-go client satisfies it through kafkaProducer.
type Producer interface {
	Produce(ctx context.Context, records []Record) error
	Close()
}

// Relay drains the outbox and publishes records. Rows are marked published
// only after the producer acknowledges the batch, so delivery is
// at-least-once; consumers deduplicate on the event ID.
type Relay struct {
	store    Store
	producer Producer
	interval time.Duration
	batch    int
	logger   *slog.Logger
}

// NewRelay connects a Kafka producer and ensures the topic exists. Returns
// nil when no brokers are configured (publishing disabled).
func NewRelay(store Store, cfg config.KafkaConfig, logger *slog.Logger) (*Relay, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	if err := ensureTopic(client, cfg.Topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Relay{
		store:    store,
		producer: &kafkaProducer{client: client, topic: cfg.Topic},
		interval: cfg.PollInterval,
		batch:    cfg.BatchSize,
		logger:   logger,
	}, nil
}

type kafkaProducer struct {
	client *kgo.Client
	topic  string
}

func (p *kafkaProducer) Produce(ctx context.Context, records []Record) error {
	batch := make([]*kgo.Record, 0, len(records))
	for _, rec := range records {
		batch = append(batch, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(rec.Key),
			Value: rec.Payload,
		})
	}
	return p.client.ProduceSync(ctx, batch...).FirstErr()
}

func (p *kafkaProducer) Close() {
	p.client.Close()
}

func ensureTopic(client *kgo.Client, topic string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, 3, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	return nil
}

// Run polls the outbox until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.producer.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drain(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox drain failed", "error", err)
			}
		}
	}
}

func (r *Relay) drain(ctx context.Context) error {
	records, err := r.store.FetchUnpublished(ctx, r.batch)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	if err := r.producer.Produce(ctx, records); err != nil {
		return fmt.Errorf("produce: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	if err := r.store.MarkPublished(ctx, ids); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "outbox batch published", "count", len(records))
	return nil
}
