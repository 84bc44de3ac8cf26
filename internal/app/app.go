// Package app wires the connector-dispatch process together and owns
// its lifecycle, grounded on the teacher's internal/app.App (logger
// first, then config, then each dependency layer, then the servers).
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	adminapi "connector-service/internal/api/admin"
	grpcapi "connector-service/internal/api/grpc"
	"connector-service/internal/config"
	"connector-service/internal/connector"
	"connector-service/internal/engine"
	"connector-service/internal/gateways/razorpay"
	"connector-service/internal/logging"
	"connector-service/internal/registry"
	"connector-service/internal/secret"
	"connector-service/internal/webhook"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds every long-lived dependency built during New, so Run can
// start them and stop them again on a termination signal.
type App struct {
	logger     *zap.Logger
	cfg        *config.Config
	reloader   *adminapi.Reloader
	analytics  *engine.AnalyticsSink
	chConn     *sql.DB
	pgPool     *pgxpool.Pool
	retryQueue *webhook.RetryQueue
	eventBus   *webhook.EventBus
	grpcServer *grpcapi.Server
	adminSrv   *adminapi.Server
}

// New builds every dependency in the fixed order spec §10's ambient
// stack requires: logger, config, connector registry, engine (with its
// analytics sink), webhook subsystem, then the two servers.
func New(configPath string) (*App, error) {
	a := &App{}

	bootLogger, err := logging.New("dev", "info", "")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bootLogger.Error("failed to load configuration", zap.Error(err))
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging.Mode, cfg.Logging.Level, cfg.Logging.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Info("configuration loaded", zap.Int("connector_count", len(cfg.Connectors)))

	a.reloader = adminapi.NewReloader(configPath, cfg)

	connectors, secrets := buildConnectorMaps(cfg)

	reg := registry.New()
	registerGateways(reg)

	var analytics *engine.AnalyticsSink
	if cfg.Analytics.Enabled {
		chConn, err := sql.Open("clickhouse", cfg.Analytics.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open clickhouse connection: %w", err)
		}
		a.chConn = chConn
		analytics = engine.NewAnalyticsSink(chConn, a.logger, cfg.Analytics.Queue)
		a.analytics = analytics
	}

	eng := engine.New(
		engine.ProxyConfig{URL: cfg.Proxy.URL, BypassPatterns: cfg.Proxy.BypassPatterns},
		cfg.Server.CallTimeout,
		a.logger,
		engine.WithAnalyticsSink(analytics),
	)

	dispatcher, err := a.buildWebhookDispatcher(cfg)
	if err != nil {
		return nil, err
	}

	edge := grpcapi.NewEdge(eng, reg, connectors)
	a.grpcServer = grpcapi.NewServer(cfg.Server.BindAddress, a.logger, edge)

	adminRouter := adminapi.NewRouter(adminapi.RouterConfig{
		Logger:       a.logger,
		AllowOrigins: cfg.Admin.AllowOrigins,
		Reloader:     a.reloader,
		Registry:     reg,
		Connectors:   connectors,
		Dispatcher:   dispatcher,
		Secrets:      secrets,
		MaxRetries:   cfg.Webhook.MaxRetries,
		Checks:       a.readinessChecks(),
		SwaggerHost:  cfg.Server.BindAddress,
	})
	a.adminSrv = adminapi.NewServer(cfg.Admin.BindAddress, adminRouter, a.logger)

	return a, nil
}

func buildConnectorMaps(cfg *config.Config) (connector.Connectors, map[string]secret.Value[string]) {
	connectors := make(connector.Connectors, len(cfg.Connectors))
	secrets := make(map[string]secret.Value[string], len(cfg.Connectors))
	for id, entry := range cfg.Connectors {
		connectors[id] = connector.GatewayConfig{
			BaseURL:        entry.BaseURL,
			DisputeBaseURL: entry.DisputeBaseURL,
			BypassProxy:    entry.BypassProxy,
		}
		secrets[id] = secret.New(entry.WebhookSecret)
	}
	return connectors, secrets
}

// registerGateways wires every gateway package this process supports
// into the registry. New gateways are added here only.
func registerGateways(reg *registry.Registry) {
	reg.Register("razorpay", connector.SchemeSignatureKey, razorpay.New)
}

func (a *App) buildWebhookDispatcher(cfg *config.Config) (*webhook.Dispatcher, error) {
	if cfg.Webhook.PostgresDSN == "" {
		a.logger.Warn("webhook.postgres_dsn not set, webhook ingress will run without dedup/retry/fan-out")
		return webhook.NewDispatcher(nil, nil, nil), nil
	}

	pgCfg, err := pgxpool.ParseConfig(cfg.Webhook.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open webhook postgres pool: %w", err)
	}
	a.pgPool = pool
	dedup := webhook.NewDedupStore(pool)

	retryQueue, err := webhook.NewRetryQueue(cfg.Webhook.RabbitMQURL)
	if err != nil {
		a.logger.Warn("failed to connect to rabbitmq, webhook retries disabled", zap.Error(err))
	} else {
		a.retryQueue = retryQueue
	}

	eventBus, err := webhook.NewEventBus(context.Background(), cfg.Webhook.NATSURL, cfg.Webhook.NATSStreamName, []string{"webhooks.>"})
	if err != nil {
		a.logger.Warn("failed to connect to nats, webhook fan-out disabled", zap.Error(err))
	} else {
		a.eventBus = eventBus
	}

	return webhook.NewDispatcher(dedup, a.retryQueue, a.eventBus), nil
}

func (a *App) readinessChecks() []func() error {
	return []func() error{
		func() error {
			if a.pgPool == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return a.pgPool.Ping(ctx)
		},
	}
}

// Run starts both servers and blocks until a termination signal
// arrives, then shuts down the gRPC server, the admin server, the
// analytics sink, the retry queue, the event bus, the Postgres pool and
// the ClickHouse connection, in that order.
func (a *App) Run() error {
	go func() {
		if err := a.grpcServer.Start(); err != nil {
			a.logger.Error("gRPC server error", zap.Error(err))
		}
	}()
	a.adminSrv.Start()

	a.logger.Info("connector service started",
		zap.String("grpc_addr", a.cfg.Server.BindAddress),
		zap.String("admin_addr", a.cfg.Admin.BindAddress),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	a.logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	a.grpcServer.Stop()
	if err := a.adminSrv.Shutdown(ctx); err != nil {
		a.logger.Error("admin server shutdown error", zap.Error(err))
	}
	if a.analytics != nil {
		a.analytics.Close()
	}
	if a.retryQueue != nil {
		_ = a.retryQueue.Close()
	}
	if a.eventBus != nil {
		a.eventBus.Close()
	}
	if a.pgPool != nil {
		a.pgPool.Close()
	}
	if a.chConn != nil {
		_ = a.chConn.Close()
	}
	_ = logging.Sync(a.logger)

	return nil
}
