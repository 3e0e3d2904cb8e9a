package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

type OrderPlacedHandler interface {
	HandleOrderPlaced(ctx context.Context, ev order.Placed) (int, error)
}

type orderDecoder interface {
	Decode(data []byte) (order.Placed, error)
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderConsumer feeds order-placed events to a handler. Offsets are
// committed only after the handler succeeds; undecodable records are logged
// and skipped.
type OrderConsumer struct {
	reader  messageReader
	codec   orderDecoder
	handler OrderPlacedHandler
	logger  logger.Logger
}

func NewOrderConsumer(cfg config.KafkaConfig, codec orderDecoder, handler OrderPlacedHandler, log logger.Logger) *OrderConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.OrderTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &OrderConsumer{
		reader:  reader,
		codec:   codec,
		handler: handler,
		logger:  log,
	}
}

// Start blocks until ctx is cancelled or a handler fails.
func (c *OrderConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}
		if err := c.handle(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *OrderConsumer) handle(ctx context.Context, msg kafkago.Message) error {
	log := c.logger.WithContext(ctx).WithFields(
		logger.Int("partition", msg.Partition),
		logger.Int64("offset", msg.Offset),
	)

	ev, err := c.codec.Decode(msg.Value)
	if err != nil {
		log.Warn("skipping undecodable order event", logger.Error(err))
		return c.commit(ctx, msg)
	}

	sent, err := c.handler.HandleOrderPlaced(ctx, ev)
	if err != nil {
		log.Error("handle order event", logger.UUID("order_id", ev.OrderID), logger.Error(err))
		return fmt.Errorf("handle order %s: %w", ev.OrderID, err)
	}
	log.Info("order event handled", logger.UUID("order_id", ev.OrderID), logger.Int("notices", sent))
	return c.commit(ctx, msg)
}

func (c *OrderConsumer) commit(ctx context.Context, msg kafkago.Message) error {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
	}
	return nil
}

func (c *OrderConsumer) Close() {
	_ = c.reader.Close()
}
