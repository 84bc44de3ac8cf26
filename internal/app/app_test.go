package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"connector-service/internal/config"
	"connector-service/internal/registry"
)

func TestBuildConnectorMaps_TranslatesEveryEntry(t *testing.T) {
	cfg := &config.Config{
		Connectors: map[string]config.GatewayEntry{
			"razorpay": {
				BaseURL:        "https://api.razorpay.com",
				DisputeBaseURL: "https://disputes.razorpay.com",
				BypassProxy:    true,
				WebhookSecret:  "whsec_123",
			},
		},
	}

	connectors, secrets := buildConnectorMaps(cfg)

	gw, ok := connectors.Get("razorpay")
	assert.True(t, ok)
	assert.Equal(t, "https://api.razorpay.com", gw.BaseURL)
	assert.Equal(t, "https://disputes.razorpay.com", gw.DisputeBaseURL)
	assert.True(t, gw.BypassProxy)

	whsec, ok := secrets["razorpay"]
	assert.True(t, ok)
	assert.Equal(t, "whsec_123", whsec.Expose())
}

func TestBuildConnectorMaps_EmptyConfigProducesEmptyMaps(t *testing.T) {
	connectors, secrets := buildConnectorMaps(&config.Config{})
	assert.Empty(t, connectors)
	assert.Empty(t, secrets)
}

func TestRegisterGateways_RegistersRazorpay(t *testing.T) {
	reg := registry.New()
	registerGateways(reg)
	assert.True(t, reg.Has("razorpay"))
	assert.False(t, reg.Has("unregistered-gateway"))
}
