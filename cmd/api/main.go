package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/MamaFati/farmDirect/internal/application/cart"
	catalogapp "github.com/MamaFati/farmDirect/internal/application/catalog"
	dashboardapp "github.com/MamaFati/farmDirect/internal/application/dashboard"
	orderapp "github.com/MamaFati/farmDirect/internal/application/order"
	"github.com/MamaFati/farmDirect/internal/application/permission"
	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/internal/domain/repository"
	"github.com/MamaFati/farmDirect/internal/infrastructure/auth"
	redisinfra "github.com/MamaFati/farmDirect/internal/infrastructure/cache/redis"
	"github.com/MamaFati/farmDirect/internal/infrastructure/encoding/avro"
	ginserver "github.com/MamaFati/farmDirect/internal/infrastructure/http/gin"
	kafkainfra "github.com/MamaFati/farmDirect/internal/infrastructure/messaging/kafka"
	"github.com/MamaFati/farmDirect/internal/infrastructure/persistence/memory"
	"github.com/MamaFati/farmDirect/internal/infrastructure/persistence/postgres"
	"github.com/MamaFati/farmDirect/internal/interfaces/http/handler"
	"github.com/MamaFati/farmDirect/internal/interfaces/http/router"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// storage is one backend's repositories behind the domain interfaces.
type storage struct {
	tx          repository.Transactor
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	carts       repository.CartRepository
	orders      repository.OrderRepository
	permissions repository.PermissionRepository
	ping        handler.Check
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zl, err := logger.NewZapLogger(cfg.App.Env, logger.WithLevel(cfg.App.LogLevel))
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl = zl.WithFields(logger.String("app", cfg.App.Name))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("open storage failed", logger.String("storage", cfg.App.Storage), logger.Error(err))
	}
	defer store.close()

	health := handler.NewHealthHandler(zl)
	if store.ping != nil {
		health.Register(cfg.App.Storage, store.ping)
	}

	var publisher orderapp.Publisher
	if cfg.Kafka.Enabled() {
		codec, err := avro.NewOrderPlacedCodec()
		if err != nil {
			zl.Fatal("init avro codec failed", logger.Error(err))
		}
		producer, err := kafkainfra.NewOrderProducer(cfg.Kafka, codec, zl)
		if err != nil {
			zl.Fatal("init kafka producer failed", logger.Error(err))
		}
		defer producer.Close()
		publisher = producer
	} else {
		zl.Warn("KAFKA_BOOTSTRAP_SERVERS is empty, order events are not published")
	}

	var idem orderapp.IdempotencyStore
	if cfg.Redis.Enabled() {
		rdb := redisinfra.NewClient(cfg.Redis)
		defer rdb.Close()
		keys := redisinfra.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		health.Register("redis", keys.Ping)
		idem = keys
	}

	perms := permission.NewStore(store.permissions)
	catalogSvc := catalogapp.NewService(store.tx, store.products, store.categories, perms)
	cartSvc := cartapp.NewService(store.carts, store.products, perms)
	orderSvc := orderapp.NewService(store.tx, store.carts, store.orders, publisher, idem, zl)
	dashboardSvc := dashboardapp.NewService(catalogSvc, orderSvc)

	if n, err := catalogSvc.SeedCategories(ctx); err != nil {
		zl.Warn("seed categories failed", logger.Error(err))
	} else if n > 0 {
		zl.Info("seeded categories", logger.Int("created", n))
	}

	engine := ginserver.NewEngine(cfg.App.Env, zl)
	router.RegisterRoutes(engine, router.Handlers{
		Products:   handler.NewProductHandler(catalogSvc, zl),
		Categories: handler.NewCategoryHandler(catalogSvc, zl),
		Cart:       handler.NewCartHandler(cartSvc, zl),
		Orders:     handler.NewOrderHandler(orderSvc, zl),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc, zl),
		Health:     health,
	}, auth.NewVerifier(cfg.Auth), zl)

	server := ginserver.NewServer(cfg.Server, engine, zl)
	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			zl.Fatal("server run failed", logger.Error(err))
		}
	case <-ctx.Done():
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zl.Error("graceful shutdown failed", logger.Error(err))
		}
	}
}

func openStorage(ctx context.Context, cfg *config.Config, zl logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		zl.Warn("using in-memory storage, data is lost on restart")
		m := memory.NewStore()
		return &storage{
			tx:          m,
			products:    m.Products(),
			categories:  m.Categories(),
			carts:       m.Carts(),
			orders:      m.Orders(),
			permissions: m.Permissions(),
			close:       func() {},
		}, nil
	}

	migrator, err := postgres.NewMigrator(cfg.DB.MigrateURL())
	if err != nil {
		return nil, err
	}
	changed, err := migrator.Up()
	if cerr := migrator.Close(); cerr != nil {
		zl.Warn("close migrator", logger.Error(cerr))
	}
	if err != nil {
		return nil, err
	}
	if changed {
		zl.Info("database schema migrated")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	db := postgres.NewDB(pool)
	return &storage{
		tx:          db,
		products:    postgres.NewProductRepository(db),
		categories:  postgres.NewCategoryRepository(db),
		carts:       postgres.NewCartRepository(db),
		orders:      postgres.NewOrderRepository(db),
		permissions: postgres.NewPermissionRepository(db),
		ping:        pool.Ping,
		close:       pool.Close,
	}, nil
}
