// Package client wraps a transport with bounded retries, linear backoff and a
// fast-fail rule for local development backends. Every call resolves to a
// model.Response; transport errors never escape.
package client

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/eventsphere-api/internal/config"
	"github.com/fakhrymubarak/eventsphere-api/internal/metrics"
	"github.com/fakhrymubarak/eventsphere-api/internal/model"
	"github.com/fakhrymubarak/eventsphere-api/internal/transport"
)

const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second

	msgNetworkError = "Network error"
	msgMaxAttempts  = "Max retry attempts reached"
)

// Sender performs a single request. *transport.Client implements it.
type Sender interface {
	Send(ctx context.Context, req transport.Request, out any) error
}

// Policy controls how many attempts a call gets and how long to wait between them.
type Policy struct {
	IsLocalTarget   bool
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	// Timeout bounds each attempt. Zero disables the per-attempt deadline.
	Timeout time.Duration
	// RateLimit caps attempts per second. Zero disables throttling.
	RateLimit float64
}

// PolicyFromConfig extracts the retry policy from the resolved configuration.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		IsLocalTarget:   cfg.IsLocalTarget,
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      cfg.RetryDelay,
		Timeout:         cfg.Timeout,
		RateLimit:       cfg.RateLimit,
	}
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client is the retrying client.
type Client struct {
	sender  Sender
	policy  Policy
	sleep   SleepFunc
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithSleep replaces the backoff wait, mainly for tests.
func WithSleep(sleep SleepFunc) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a retrying client around sender.
func New(sender Sender, policy Policy, opts ...Option) *Client {
	if policy.RetryAttempts <= 0 {
		policy.RetryAttempts = DefaultRetryAttempts
	}
	if policy.RetryDelay < 0 {
		policy.RetryDelay = DefaultRetryDelay
	}
	c := &Client{
		sender: sender,
		policy: policy,
		sleep:  sleepContext,
		logger: zap.NewNop().Sugar(),
	}
	if policy.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(policy.RateLimit), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the policy the client was built with.
func (c *Client) Policy() Policy {
	return c.policy
}

// fastFail reports whether the target is a local backend that the offline
// fallback can stand in for.
func (c *Client) fastFail() bool {
	return c.policy.IsLocalTarget && c.policy.FallbackEnabled
}

// MaxRetries is the number of attempts a call gets.
func (c *Client) MaxRetries() int {
	if c.fastFail() {
		return 1
	}
	return c.policy.RetryAttempts
}

// Do sends req until it succeeds or the attempts run out, decoding the body as T.
func Do[T any](ctx context.Context, c *Client, req transport.Request) model.Response[T] {
	maxRetries := c.MaxRetries()

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return model.Fail[T](err.Error())
			}
		}

		var out T
		err := c.attempt(ctx, req, &out)
		if err == nil {
			return model.OK(out)
		}

		// The caller gave up; further attempts cannot be delivered.
		if ctx.Err() != nil {
			return model.Fail[T](ctx.Err().Error())
		}

		skipDelay := false
		switch {
		case transport.KindOf(err) == transport.KindRequest:
			c.logger.Errorw("API request could not be built", "method", req.Method, "path", req.Path, "error", err)
			return model.Fail[T](err.Error())
		case transport.IsNetworkUnreachable(err) && c.fastFail():
			if attempt == 1 {
				c.logger.Infow("Local API unavailable", "path", req.Path)
			}
			skipDelay = true
		default:
			c.logger.Warnw("API request failed", "attempt", attempt, "maxRetries", maxRetries,
				"method", req.Method, "path", req.Path, "error", err)
		}

		if attempt == maxRetries {
			return model.Fail[T](errorMessage(err))
		}

		if !skipDelay {
			if err := c.sleep(ctx, c.policy.RetryDelay*time.Duration(attempt)); err != nil {
				return model.Fail[T](err.Error())
			}
		}
	}

	return model.Fail[T](msgMaxAttempts)
}

func (c *Client) attempt(ctx context.Context, req transport.Request, out any) error {
	attemptCtx := ctx
	if c.policy.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.sender.Send(attemptCtx, req, out)
	metrics.RequestDuration.Observe(time.Since(start).Seconds())

	result := "success"
	if err != nil {
		result = transport.KindOf(err).String()
	}
	metrics.RequestAttempts.WithLabelValues(result).Inc()
	return err
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return msgNetworkError
	}
	return err.Error()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
