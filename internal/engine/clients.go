package engine

import (
	"net/http"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the wall-clock timeout applied to a call when the
// process configuration does not override it (spec §4.3 step 4).
const DefaultTimeout = 60 * time.Second

// ProxyConfig configures the engine's proxied HTTP client and the
// bypass patterns that route a URL to the direct client instead.
type ProxyConfig struct {
	URL            string
	BypassPatterns []string
}

// clientSet holds the two long-lived, connection-pooling HTTP clients
// required by spec §5: one that routes through the configured egress
// proxy, one that always dials directly. Both are built once, lazily,
// guarded by sync.Once so concurrent first-use callers race to build
// at most one of each (spec §5, "initialization is race-free").
type clientSet struct {
	once     sync.Once
	direct   *resty.Client
	proxied  *resty.Client
	bypassRx []*regexp.Regexp
	proxyCfg ProxyConfig
	timeout  time.Duration
}

func newClientSet(proxyCfg ProxyConfig, timeout time.Duration) *clientSet {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &clientSet{proxyCfg: proxyCfg, timeout: timeout}
}

func (c *clientSet) ensure() {
	c.once.Do(func() {
		c.direct = resty.New().
			SetTimeout(c.timeout).
			SetTransport(&http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			})

		proxiedTransport := &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		}
		if c.proxyCfg.URL != "" {
			if proxyURL, err := url.Parse(c.proxyCfg.URL); err == nil {
				proxiedTransport.Proxy = http.ProxyURL(proxyURL)
			}
		}
		c.proxied = resty.New().
			SetTimeout(c.timeout).
			SetTransport(proxiedTransport)

		for _, pattern := range c.proxyCfg.BypassPatterns {
			if rx, err := regexp.Compile(pattern); err == nil {
				c.bypassRx = append(c.bypassRx, rx)
			}
		}
	})
}

// selectClient returns the direct client if no proxy is configured or the URL
// matches a bypass pattern, otherwise the proxied client (spec §4.3
// step 3).
func (c *clientSet) selectClient(rawURL string) *resty.Client {
	c.ensure()
	if c.proxyCfg.URL == "" {
		return c.direct
	}
	for _, rx := range c.bypassRx {
		if rx.MatchString(rawURL) {
			return c.direct
		}
	}
	return c.proxied
}
