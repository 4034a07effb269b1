package soap

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	// Invoice forms carry a base64 PDF, so the ceiling is generous.
	maxResponseBytes = 32 << 20
)

// Response is a raw backend reply. Non-2xx replies are returned as-is so the
// caller can look for a SOAP fault in the body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client posts SOAP envelopes to the backend.
type Client struct {
	baseURL     string
	servicePath string
	sapClient   string
	user        string
	password    string
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithBasicAuth sets the credentials sent with every call.
func WithBasicAuth(user, password string) Option {
	return func(c *Client) {
		c.user = user
		c.password = password
	}
}

// WithServicePath sets the path prefix service names are resolved under.
func WithServicePath(path string) Option {
	return func(c *Client) {
		c.servicePath = path
	}
}

// WithSAPClient sets the backend client (mandant) sent as query parameter and
// context cookie.
func WithSAPClient(client string) Option {
	return func(c *Client) {
		c.sapClient = client
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithInsecureTLS disables certificate verification. Development backends
// commonly run with self-signed certificates.
func WithInsecureTLS() Option {
	return func(c *Client) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		c.httpClient.Transport = transport
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint resolves a service name to the URL envelopes are posted to.
// Absolute URLs are returned unchanged.
func (c *Client) Endpoint(service string) string {
	if strings.HasPrefix(service, "http://") || strings.HasPrefix(service, "https://") {
		return service
	}
	var b strings.Builder
	b.WriteString(c.baseURL)
	if p := strings.Trim(c.servicePath, "/"); p != "" {
		b.WriteString("/")
		b.WriteString(p)
	}
	b.WriteString("/")
	b.WriteString(strings.TrimLeft(service, "/"))
	if c.sapClient != "" {
		b.WriteString("?sap-client=")
		b.WriteString(url.QueryEscape(c.sapClient))
	}
	return b.String()
}

// Call posts envelope to endpoint. A non-nil error is always a
// *TransportError; HTTP error statuses are reported through Response.
func (c *Client) Call(ctx context.Context, endpoint, envelope string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(envelope))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("Accept", "text/xml")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}
	if c.sapClient != "" {
		req.AddCookie(&http.Cookie{Name: "sap-usercontext", Value: "sap-client=" + c.sapClient})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classify(endpoint, err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func classify(endpoint string, err error) *TransportError {
	te := &TransportError{Endpoint: endpoint, Err: err}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		te.Timeout = true
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		te.Refused = true
	}
	return te
}
