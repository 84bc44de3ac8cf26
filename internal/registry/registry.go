// Package registry implements the gateway registry and selection logic
// of spec §4.2: a map, filled by Register at process startup, from
// connector identifier to a factory producing a ConnectorService-capable
// handle, with
// authentication-scheme validation at selection time.
package registry

import (
	"connector-service/internal/connector"
	"connector-service/internal/connectorerr"
)

// Factory builds a ConnectorService for one connector given its
// configured base URLs. Registered once per connector at process
// startup (internal/app.registerGateways); Select and Build invoke it on
// every resolution.
type Factory func(cfg connector.GatewayConfig) connector.ConnectorService

// Registry is the closed map of connector id to factory, filled at
// startup, plus the authentication scheme each connector expects.
type Registry struct {
	factories map[string]Factory
	schemes   map[string]connector.Scheme
}

// New builds an empty Registry. Call Register for every supported
// connector at process startup, before any request is served.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		schemes:   make(map[string]connector.Scheme),
	}
}

// Register adds a connector to the registry. It is intended to be
// called from an init-time wiring function, never concurrently with
// Select.
func (r *Registry) Register(id string, scheme connector.Scheme, factory Factory) {
	r.factories[id] = factory
	r.schemes[id] = scheme
}

// Select resolves a connector by id, validates the supplied auth
// against the connector's expected scheme, and returns a built handle.
// Selection is O(1): three map lookups and a factory call, no reflection
// or scanning. A scheme mismatch returns InvalidConnectorAuthentication
// without ever calling the factory or attempting an outbound call,
// satisfying spec §8.5.
func (r *Registry) Select(id string, auth connector.ConnectorAuth, connectors connector.Connectors) (connector.ConnectorService, *connectorerr.Error) {
	factory, ok := r.factories[id]
	if !ok {
		return connector.ConnectorService{}, connectorerr.InvalidConnectorName(id)
	}

	expected := r.schemes[id]
	if connector.SchemeOf(auth) != expected {
		return connector.ConnectorService{}, connectorerr.InvalidConnectorAuthentication(id)
	}

	cfg, ok := connectors.Get(id)
	if !ok {
		return connector.ConnectorService{}, connectorerr.InvalidConnectorName(id)
	}

	return factory(cfg), nil
}

// Has reports whether id is registered, without building a handle.
func (r *Registry) Has(id string) bool {
	_, ok := r.factories[id]
	return ok
}

// Build resolves a connector's handle without validating a caller's
// ConnectorAuth, for entry surfaces that have no per-call credential to
// check — inbound webhook delivery (spec §8.8) authenticates by
// VerifySource instead of the x-auth scheme Select enforces.
func (r *Registry) Build(id string, connectors connector.Connectors) (connector.ConnectorService, *connectorerr.Error) {
	factory, ok := r.factories[id]
	if !ok {
		return connector.ConnectorService{}, connectorerr.InvalidConnectorName(id)
	}
	cfg, ok := connectors.Get(id)
	if !ok {
		return connector.ConnectorService{}, connectorerr.InvalidConnectorName(id)
	}
	return factory(cfg), nil
}
