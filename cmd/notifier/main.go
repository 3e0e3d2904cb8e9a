package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/MamaFati/farmDirect/internal/application/notification"
	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/internal/infrastructure/encoding/avro"
	kafkainfra "github.com/MamaFati/farmDirect/internal/infrastructure/messaging/kafka"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

// notifier consumes order-placed events and tells each seller about the
// lines that concern them.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if !cfg.Kafka.Enabled() {
		log.Fatal("KAFKA_BOOTSTRAP_SERVERS is empty (e.g. localhost:19092,localhost:29092)")
	}

	zl, err := logger.NewZapLogger(cfg.App.Env, logger.WithLevel(cfg.App.LogLevel))
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl = zl.WithFields(logger.String("app", cfg.App.Name+"-notifier"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	codec, err := avro.NewOrderPlacedCodec()
	if err != nil {
		zl.Fatal("init avro codec failed", logger.Error(err))
	}

	svc := notification.NewService(notification.NewLogNotifier(zl))
	consumer := kafkainfra.NewOrderConsumer(cfg.Kafka, codec, svc, zl)
	defer consumer.Close()

	zl.Info("consuming order events",
		logger.String("topic", cfg.Kafka.OrderTopic),
		logger.String("group", cfg.Kafka.ConsumerGroup),
	)
	if err := consumer.Start(ctx); err != nil {
		zl.Error("kafka consumer stopped", logger.Error(err))
		return
	}
	zl.Info("notifier stopped")
}
