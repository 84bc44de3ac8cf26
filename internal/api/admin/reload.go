package admin

import (
	"net/http"
	"sync/atomic"

	"github.com/go-chi/render"

	"connector-service/internal/config"
)

// Reloader holds the most recently loaded Config behind an atomic
// pointer. SPEC_FULL.md §10.1 fixes the engine/registry/connector core
// as load-once, never-mutated-after-start, and Reloader is never
// consulted by the engine or registry. The admin router reads Current
// once, in NewRouter, for the JWT secret, and takes its CORS origins
// and webhook secrets from RouterConfig, so a reload changes none of
// them: afterwards only Current returns the new Config.
type Reloader struct {
	configPath string
	current    atomic.Pointer[config.Config]
}

// NewReloader seeds a Reloader with the Config already loaded at
// startup, so Current never returns nil.
func NewReloader(configPath string, initial *config.Config) *Reloader {
	r := &Reloader{configPath: configPath}
	r.current.Store(initial)
	return r
}

// Current returns the most recently loaded Config.
func (r *Reloader) Current() *config.Config {
	return r.current.Load()
}

// Reload re-reads configPath and, if it parses and validates, swaps it
// in as Current. The previous Config remains in effect if Load fails,
// so a bad file on disk cannot take the admin layer down.
func (r *Reloader) Reload() (*config.Config, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, err
	}
	r.current.Store(cfg)
	return cfg, nil
}

func (r *Reloader) reloadHandler(w http.ResponseWriter, req *http.Request) {
	cfg, err := r.Reload()
	if err != nil {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, errorBody{Message: err.Error()})
		return
	}
	render.Status(req, http.StatusOK)
	render.JSON(w, req, map[string]int{"connectors": len(cfg.Connectors)})
}
