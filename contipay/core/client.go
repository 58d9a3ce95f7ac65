// Package core implements the transport to the ContiPay acquire API.
// It knows nothing about providers or field validation: it takes a fully
// built payload, sends it to the sandbox or live endpoint, and returns the
// gateway's JSON response untouched.
package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	// DefaultDevURL is the ContiPay sandbox.
	DefaultDevURL = "https://api-uat.contipay.net"
	// DefaultLiveURL is the ContiPay production API.
	DefaultLiveURL = "https://api.contipay.net"

	// ModeLive selects the live URL; any other mode uses the sandbox.
	ModeLive = "live"
	// MethodDirect is sent with PUT; any other method is a redirect sent with POST.
	MethodDirect = "direct"

	paymentPath = "/acquire/payment"
)

var (
	// ErrEncode is returned when the payload cannot be marshalled.
	ErrEncode = errors.New("failed to encode payload")

	// ErrInvalidResponse is returned when the gateway answers 2xx with a non-JSON body.
	ErrInvalidResponse = errors.New("invalid response from ContiPay")

	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("ContiPay circuit breaker is open")
)

// StatusError is returned when the gateway answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("ContiPay returned status %d: %s", e.StatusCode, e.Body)
}

// Client sends payloads to ContiPay.
//
// UpdateURL, SetAppMode and SetPaymentMethod return reconfigured copies, so a
// Client can be shared by callers using different modes. Copies share the
// HTTP client and the circuit breaker.
type Client struct {
	apiKey     string
	apiSecret  string
	devURL     string
	liveURL    string
	mode       string
	method     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     logrus.FieldLogger

	failureThreshold uint32
	openTimeout      time.Duration
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A nil client is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithTimeout sets the HTTP client timeout. A client passed with
// WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		hc := *client.httpClient
		hc.Timeout = d
		client.httpClient = &hc
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(client *Client) {
		if l != nil {
			client.logger = l
		}
	}
}

// WithBreaker tunes the circuit breaker: it opens after threshold consecutive
// failures and stays open for openTimeout.
func WithBreaker(threshold uint32, openTimeout time.Duration) Option {
	return func(client *Client) {
		client.failureThreshold = threshold
		client.openTimeout = openTimeout
	}
}

// New creates a Client for the given credentials, pointed at the default URLs
// in dev mode with the direct method.
func New(apiKey, apiSecret string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		devURL:    DefaultDevURL,
		liveURL:   DefaultLiveURL,
		mode:      "dev",
		method:    MethodDirect,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:           discardLogger(),
		failureThreshold: 5,
		openTimeout:      30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "contipay",
		Timeout: c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.failureThreshold
		},
		// Gateway rejections (4xx) are answers, not outages.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			return errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("ContiPay circuit breaker changed state")
		},
	})
	return c
}

// UpdateURL returns a copy pointed at the given sandbox and live base URLs.
func (c *Client) UpdateURL(devURL, liveURL string) *Client {
	cp := *c
	cp.devURL = strings.TrimRight(devURL, "/")
	cp.liveURL = strings.TrimRight(liveURL, "/")
	return &cp
}

// SetAppMode returns a copy using the given environment mode.
func (c *Client) SetAppMode(mode string) *Client {
	cp := *c
	cp.mode = mode
	return &cp
}

// SetPaymentMethod returns a copy using the given processing method.
func (c *Client) SetPaymentMethod(method string) *Client {
	cp := *c
	cp.method = method
	return &cp
}

// BaseURL returns the URL selected by the current mode.
func (c *Client) BaseURL() string {
	if c.mode == ModeLive {
		return c.liveURL
	}
	return c.devURL
}

// Process sends the payload and returns the gateway's JSON body verbatim.
func (c *Client) Process(ctx context.Context, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.send(ctx, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (c *Client) send(ctx context.Context, body []byte) (json.RawMessage, error) {
	url := c.BaseURL() + paymentPath

	verb := http.MethodPost
	if c.method == MethodDirect {
		verb = http.MethodPut
	}

	req, err := http.NewRequestWithContext(ctx, verb, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"url":    url,
		"verb":   verb,
		"mode":   c.mode,
		"method": c.method,
	}).Debug("sending payment request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, truncate(string(respBody), 200))
	}

	return json.RawMessage(respBody), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
