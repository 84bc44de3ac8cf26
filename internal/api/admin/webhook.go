package admin

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"connector-service/internal/connector"
	"connector-service/internal/registry"
	"connector-service/internal/secret"
	"connector-service/internal/webhook"
)

// webhookSecrets maps a connector id to the shared secret its incoming
// webhooks are verified against (GatewayEntry.WebhookSecret).
type webhookSecrets map[string]secret.Value[string]

// webhookHandler exposes POST /webhooks/{connector}, the inbound
// delivery endpoint every gateway's webhook configuration points at.
// It never requires the admin JWT — webhook authenticity is
// established by VerifySource, not by a bearer token (spec §8.8).
type webhookHandler struct {
	dispatcher *webhook.Dispatcher
	registry   *registry.Registry
	connectors connector.Connectors
	secrets    webhookSecrets
	maxRetries int
}

func (h *webhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	connectorID := chi.URLParam(r, "connector")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorBody{Message: "failed to read request body"})
		return
	}

	svc, cerr := h.registry.Build(connectorID, h.connectors)
	if cerr != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorBody{Message: cerr.Error()})
		return
	}

	outcome := h.dispatcher.Dispatch(r.Context(), connectorID, svc.Webhook, body, r.Header, h.secrets[connectorID], h.maxRetries)
	if !outcome.Accepted {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorBody{Message: "webhook source verification failed"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]bool{"duplicate": outcome.Duplicate})
}
