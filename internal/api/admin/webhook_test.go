package admin

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"connector-service/internal/connector"
	"connector-service/internal/registry"
)

func TestWebhookHandler_UnknownConnectorReturns404(t *testing.T) {
	h := &webhookHandler{
		registry:   registry.New(),
		connectors: connector.Connectors{},
		secrets:    webhookSecrets{},
	}

	r := chi.NewRouter()
	r.Post("/webhooks/{connector}", h.ServeHTTP)

	req := httptest.NewRequest("POST", "/webhooks/unknown-gateway", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}
