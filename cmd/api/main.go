package main

import (
	"log"
	"os"

	"connector-service/internal/app"
	"connector-service/internal/config"
)

// @title Connector Gateway Service
// @version 1.0
// @description Stateless gRPC gateway dispatching payment operations to
// @description third-party connectors through a flow-generic execution engine.

// @contact.name Platform Team

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9090
// @BasePath /

// @securityDefinitions.apikey AdminBearer
// @in header
// @name Authorization
// @description Admin reload endpoint only. Type "Bearer" followed by a JWT.

/*
Application Entry Point

This is the entry point for the connector gateway process. The boot
sequence is orchestrated by internal/app.New and internal/app.Run:

BOOT SEQUENCE:
1. Bootstrap logger (Zap, dev mode) — used only until config is loaded.

2. Configuration loading (internal/config)
   - TOML file at the path given as argv[1], else CONNECTOR_CONFIG_PATH,
     else config.toml (config.ResolveConfigPath)
   - Environment variable overlay (the unprefixed vars listed under
     OPTIONAL ENVIRONMENT VARIABLES below — see Load's doc comment)
   - Validation of required fields per connector entry

3. Final logger (mode/level/file path from config)

4. Admin Reloader — holds the config behind an atomic pointer; the
   reload endpoint re-reads the file and swaps it in. CORS origins,
   webhook secrets and the JWT secret are fixed when the admin router
   is built, so a reload does not change them, and the engine/registry/
   connector core below is never touched by a reload.

5. Connector registry — one factory per supported gateway, registered
   in internal/app.registerGateways, keyed by connector ID and auth
   scheme.

6. Execution engine — HTTP clients (direct + proxied), optional
   ClickHouse-backed analytics sink, shared across every call.

7. Webhook subsystem — Postgres-backed dedup store, RabbitMQ retry
   queue, NATS JetStream event bus, composed into a Dispatcher. Broker
   connection failures are logged as warnings, not fatal: the process
   still serves payment traffic with webhook retry/fan-out degraded.

8. gRPC edge server (the payment dispatch surface) and the admin HTTP
   server (health/readiness/metrics/docs/webhook ingress/config
   reload), started concurrently.

REQUIRED CONFIGURATION:
- A TOML config file (path as the first CLI argument, else
  CONNECTOR_CONFIG_PATH, else ./config.toml)
  naming at least one [connectors.<id>] entry with base_url.
- admin.jwt_secret: HMAC secret for the config-reload endpoint.

OPTIONAL ENVIRONMENT VARIABLES (override the TOML file):
- SERVER_BIND_ADDRESS, ADMIN_BIND_ADDRESS, SERVER_CALL_TIMEOUT
- PROXY_URL, ANALYTICS_CLICKHOUSE_DSN
- WEBHOOK_POSTGRES_DSN, WEBHOOK_RABBITMQ_URL, WEBHOOK_NATS_URL
- LOG_LEVEL, APP_MODE

GRACEFUL SHUTDOWN:
On SIGINT/SIGTERM: stop the gRPC server, shut down the admin HTTP
server (with a 20s deadline for in-flight requests), close the
analytics sink, retry queue, event bus, and database connections, then
flush logs.

COMMON FAILURE MODES:

1. "failed to load configuration: ..."
   Cause: missing/invalid config.toml, or a required field left empty.
   Fix: check the file path argument and every [connectors.<id>] entry.

2. "failed to open clickhouse connection: ..."
   Cause: analytics.enabled=true but analytics.dsn is unreachable.
   Fix: verify ClickHouse is running, or set analytics.enabled=false.

3. gRPC calls returning InvalidArgument
   Cause: missing/unknown x-connector or x-auth metadata, or an
   x-auth scheme that doesn't match the connector's registered scheme.
   Fix: check the per-call metadata headers documented in spec §4.2.

4. "bind: address already in use"
   Cause: server.bind_address or admin.bind_address already taken.
   Fix: stop the conflicting process or change the bind address.
*/

func main() {
	var argOverride string
	if len(os.Args) > 1 {
		argOverride = os.Args[1]
	}
	configPath, err := config.ResolveConfigPath(argOverride)
	if err != nil {
		log.Fatalf("failed to resolve config path: %v", err)
	}

	application, err := app.New(configPath)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
