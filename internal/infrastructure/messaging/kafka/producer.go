package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

// ContentTypeAvro is set on every record this package produces.
const ContentTypeAvro = "application/avro"

type recordClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type orderEncoder interface {
	Encode(ev order.Placed) ([]byte, error)
}

// OrderProducer publishes order-placed events keyed by order id, so every
// event of one order lands on the same partition.
type OrderProducer struct {
	client recordClient
	codec  orderEncoder
	topic  string
	logger logger.Logger
}

func NewOrderProducer(cfg config.KafkaConfig, codec orderEncoder, log logger.Logger) (*OrderProducer, error) {
	log.Info("creating kafka producer",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.OrderTopic),
	)

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.OrderTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &OrderProducer{
		client: client,
		codec:  codec,
		topic:  cfg.OrderTopic,
		logger: log,
	}, nil
}

// PublishOrderPlaced implements the checkout Publisher.
func (p *OrderProducer) PublishOrderPlaced(ctx context.Context, ev order.Placed) error {
	payload, err := p.codec.Encode(ev)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", ev.OrderID, err)
	}
	return p.publish(ctx, []byte(ev.OrderID.String()), payload)
}

func (p *OrderProducer) publish(ctx context.Context, key, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is empty")
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       key,
		Value:     payload,
		Timestamp: time.Now().UTC(),
		Headers:   []kgo.RecordHeader{{Key: "content-type", Value: []byte(ContentTypeAvro)}},
	}

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		p.logger.WithContext(ctx).Error("kafka publish failed",
			logger.String("topic", p.topic),
			logger.Int("payload_bytes", len(payload)),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.WithContext(ctx).Debug("kafka record published",
		logger.String("topic", p.topic),
		logger.String("key", string(key)),
	)
	return nil
}

func (p *OrderProducer) Close() {
	p.logger.Info("closing kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
	}
}
