package connector

// GatewayConfig carries the per-connector URLs loaded once at process
// start. It is never mutated after load.
type GatewayConfig struct {
	BaseURL        string
	DisputeBaseURL string
	BypassProxy    bool
}

// Connectors maps a connector identifier to its configuration. It is
// built once from the process TOML config (internal/config) and handed
// to the registry and engine as a read-only dependency; nothing in the
// core mutates it after construction.
type Connectors map[string]GatewayConfig

// Get returns the configuration for id, or the zero GatewayConfig and
// false if id is not configured.
func (c Connectors) Get(id string) (GatewayConfig, bool) {
	cfg, ok := c[id]
	return cfg, ok
}
