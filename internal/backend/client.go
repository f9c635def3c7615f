// Package backend talks to the ESP32 irrigation controller over HTTP.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	statusPath     = "/api/status"
	waterStartPath = "/api/water/start"
	maxBodyBytes   = 1 << 16
)

// Status is the body of GET /api/status. Moisture is the raw ADC value;
// it may arrive as a number or a numeric string.
type Status struct {
	Moisture   any `json:"moisture"`
	IsWatering any `json:"isWatering"`
}

// MoistureValue converts Moisture to a float64. Anything non-numeric yields NaN.
func (s Status) MoistureValue() float64 {
	return toFloat(s.Moisture)
}

// Watering reports isWatering == 1.
func (s Status) Watering() bool {
	return toFloat(s.IsWatering) == 1
}

// Client is a thin HTTP client for the controller API.
type Client struct {
	base    string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// Option customizes a Client.
type Option func(*Client)

// WithBreaker stops calling the controller after failures consecutive errors
// and probes it again once openFor has elapsed. failures < 1 disables it.
func WithBreaker(failures int, openFor time.Duration) Option {
	return func(c *Client) {
		if failures < 1 {
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "esp32-backend",
			Timeout: openFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(failures)
			},
		})
	}
}

// NewClient builds a client for the given base URL. A zero timeout means none.
func NewClient(base string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(strings.TrimSpace(base), "/"),
		client: &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BreakerState reports the circuit state, or "disabled" without a breaker.
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

// Status performs GET /api/status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	return guard(c, func() (Status, error) { return c.status(ctx) })
}

// StartWatering performs POST /api/water/start and returns the response text.
func (c *Client) StartWatering(ctx context.Context) (string, error) {
	return guard(c, func() (string, error) { return c.startWatering(ctx) })
}

// guard runs fn through the breaker when one is configured.
func guard[T any](c *Client, fn func() (T, error)) (T, error) {
	if c.breaker == nil {
		return fn()
	}
	v, err := c.breaker.Execute(func() (interface{}, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Client) status(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+statusPath, nil)
	if err != nil {
		return Status{}, fmt.Errorf("build status request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("status request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return Status{}, err
	}
	var st Status
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&st); err != nil {
		return Status{}, fmt.Errorf("decode status: %w", err)
	}
	return st, nil
}

func (c *Client) startWatering(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+waterStartPath, nil)
	if err != nil {
		return "", fmt.Errorf("build start request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("start request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return "", err
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read start response: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
