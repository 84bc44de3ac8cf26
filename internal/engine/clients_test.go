package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClientSet_DefaultsTimeoutWhenNonPositive(t *testing.T) {
	cs := newClientSet(ProxyConfig{}, 0)
	assert.Equal(t, DefaultTimeout, cs.timeout)
}

func TestNewClientSet_KeepsExplicitTimeout(t *testing.T) {
	cs := newClientSet(ProxyConfig{}, 5*time.Second)
	assert.Equal(t, 5*time.Second, cs.timeout)
}

func TestSelectClient_NoProxyConfiguredAlwaysReturnsDirect(t *testing.T) {
	cs := newClientSet(ProxyConfig{}, time.Second)
	direct := cs.selectClient("https://api.razorpay.com/v1/payments")
	assert.Same(t, cs.direct, direct)
}

func TestSelectClient_ProxyConfiguredRoutesThroughProxied(t *testing.T) {
	cs := newClientSet(ProxyConfig{URL: "http://proxy.internal:3128"}, time.Second)
	client := cs.selectClient("https://api.razorpay.com/v1/payments")
	assert.Same(t, cs.proxied, client)
}

func TestSelectClient_BypassPatternRoutesDirect(t *testing.T) {
	cs := newClientSet(ProxyConfig{
		URL:            "http://proxy.internal:3128",
		BypassPatterns: []string{`^https://api\.razorpay\.com/`},
	}, time.Second)

	direct := cs.selectClient("https://api.razorpay.com/v1/payments")
	assert.Same(t, cs.direct, direct)

	proxied := cs.selectClient("https://api.stripe.com/v1/charges")
	assert.Same(t, cs.proxied, proxied)
}

func TestSelectClient_InvalidBypassPatternIsIgnored(t *testing.T) {
	cs := newClientSet(ProxyConfig{
		URL:            "http://proxy.internal:3128",
		BypassPatterns: []string{"(unterminated["},
	}, time.Second)

	client := cs.selectClient("https://api.razorpay.com/v1/payments")
	assert.Same(t, cs.proxied, client)
}
