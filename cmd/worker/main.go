package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"connector-service/internal/config"
	"connector-service/internal/connector"
	"connector-service/internal/gateways/razorpay"
	"connector-service/internal/logging"
	"connector-service/internal/registry"
	"connector-service/internal/webhook"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker runs the webhook retry consumer as a separate process from
// the gRPC/admin servers, grounded on the teacher's cmd/worker.Worker
// background-job shape (ticker-driven jobs against a shared
// dependency set), narrowed here to the one background job this
// service has: redelivering webhook events the dispatcher couldn't
// publish on first attempt.
type Worker struct {
	logger     *zap.Logger
	registry   *registry.Registry
	connectors connector.Connectors
	dispatcher *webhook.Dispatcher
	retryQueue *webhook.RetryQueue
	maxRetries int
}

func main() {
	logger, err := logging.New("dev", "info", "")
	if err != nil {
		panic(err)
	}
	defer logging.Sync(logger)

	logger.Info("starting webhook retry worker")

	var argOverride string
	if len(os.Args) > 1 {
		argOverride = os.Args[1]
	}
	configPath, err := config.ResolveConfigPath(argOverride)
	if err != nil {
		logger.Fatal("failed to resolve config path", zap.Error(err))
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	connectors := make(connector.Connectors, len(cfg.Connectors))
	for id, entry := range cfg.Connectors {
		connectors[id] = connector.GatewayConfig{
			BaseURL:        entry.BaseURL,
			DisputeBaseURL: entry.DisputeBaseURL,
			BypassProxy:    entry.BypassProxy,
		}
	}

	reg := registry.New()
	reg.Register("razorpay", connector.SchemeSignatureKey, razorpay.New)

	pgCfg, err := pgxpool.ParseConfig(cfg.Webhook.PostgresDSN)
	if err != nil {
		logger.Fatal("failed to parse webhook postgres dsn", zap.Error(err))
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
	if err != nil {
		logger.Fatal("failed to open webhook postgres pool", zap.Error(err))
	}
	defer pool.Close()
	dedup := webhook.NewDedupStore(pool)

	retryQueue, err := webhook.NewRetryQueue(cfg.Webhook.RabbitMQURL)
	if err != nil {
		logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer retryQueue.Close()

	eventBus, err := webhook.NewEventBus(context.Background(), cfg.Webhook.NATSURL, cfg.Webhook.NATSStreamName, []string{"webhooks.>"})
	if err != nil {
		logger.Fatal("failed to connect to nats", zap.Error(err))
	}
	defer eventBus.Close()

	w := &Worker{
		logger:     logger,
		registry:   reg,
		connectors: connectors,
		dispatcher: webhook.NewDispatcher(dedup, retryQueue, eventBus),
		retryQueue: retryQueue,
		maxRetries: cfg.Webhook.MaxRetries,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.consumeRetries(ctx)

	logger.Info("webhook retry worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	cancel()
	logger.Info("webhook retry worker stopped")
}

// consumeRetries pulls queued webhook redeliveries and replays them
// through the dispatcher's normalize -> publish path until ctx is
// canceled.
func (w *Worker) consumeRetries(ctx context.Context) {
	err := w.retryQueue.Consume(ctx, func(ctx context.Context, connectorID, eventID string, payload []byte, retryCount int) error {
		svc, cerr := w.registry.Build(connectorID, w.connectors)
		if cerr != nil {
			w.logger.Error("retry: unknown connector", zap.String("connector_id", connectorID), zap.Error(cerr))
			return nil
		}

		err := w.dispatcher.ProcessRetry(ctx, connectorID, svc.Webhook, eventID, payload, retryCount, w.maxRetries)
		if err != nil {
			w.logger.Warn("webhook retry failed, requeuing",
				zap.String("connector_id", connectorID),
				zap.String("event_id", eventID),
				zap.Int("retry_count", retryCount),
				zap.Error(err),
			)
			return err
		}

		w.logger.Info("webhook retry delivered",
			zap.String("connector_id", connectorID),
			zap.String("event_id", eventID),
			zap.Int("retry_count", retryCount),
		)
		return nil
	})
	if err != nil {
		w.logger.Error("retry consumer stopped", zap.Error(err))
	}
}
