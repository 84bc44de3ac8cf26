package admin

import (
	"net/http"

	"github.com/go-chi/render"
)

// readiness reports whether the process is ready to accept traffic.
// checks holds functions rather than a stored bool so readyz always
// reflects the current state of dependencies the caller wires in
// (e.g. a Postgres/NATS ping), not a snapshot taken at startup.
type readiness struct {
	checks []func() error
}

func newReadiness(checks ...func() error) *readiness {
	return &readiness{checks: checks}
}

func (rd *readiness) healthz(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (rd *readiness) readyz(w http.ResponseWriter, r *http.Request) {
	for _, check := range rd.checks {
		if err := check(); err != nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, errorBody{Message: err.Error()})
			return
		}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ready"})
}
