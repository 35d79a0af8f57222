package client

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"github.com/kbukum/eventsource/errors"
)

// Stream is a live event-stream response.
type Stream struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// ContentType is the response Content-Type header.
	ContentType string
	// Body is the chunked response body. The caller owns it.
	Body io.ReadCloser
}

// Transport opens the long-lived HTTP request behind a subscription.
// Implementations must honor context cancellation: canceling the
// context passed to Open aborts both the dial and any subsequent Body
// reads, which is how the client enforces its heartbeat timeout.
type Transport interface {
	Open(ctx context.Context, url string, headers map[string]string, auth *AuthConfig) (*Stream, error)
}

// httpTransport is the default Transport built on net/http.
type httpTransport struct {
	client *http.Client
}

func newHTTPTransport(cfg Config) *httpTransport {
	var rt http.RoundTripper
	if cfg.EnableH2C {
		// Cleartext HTTP/2 for backends that multiplex streams without TLS.
		rt = &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return (&net.Dialer{Timeout: 10 * time.Second}).DialContext(ctx, network, addr)
			},
		}
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	// No client timeout: the stream is long-lived and cancellation is
	// handled through the request context.
	return &httpTransport{
		client: &http.Client{Transport: rt},
	}
}

func (t *httpTransport) Open(ctx context.Context, url string, headers map[string]string, auth *AuthConfig) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.ConnectionFailed(url, err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	auth.apply(req)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.ConnectionFailed(url, err)
	}

	return &Stream{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}
