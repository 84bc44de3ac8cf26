package admin

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsHandler exposes the default Prometheus registry, populated by
// chi-prometheus's per-request middleware plus any process/runtime
// collectors registered elsewhere at startup.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}
