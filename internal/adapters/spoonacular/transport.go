package spoonacular

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// NewTransport returns a pooled transport that negotiates HTTP/2 with the provider.
func NewTransport() *http.Transport {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}
	// Only fails if the transport was already configured for h2.
	_ = http2.ConfigureTransport(tr)
	return tr
}
