// Package resilience wraps outbound HTTP calls with retries, exponential
// backoff and a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

// DefaultBackoff is used by callers that have no specific retry policy.
var DefaultBackoff = BackoffConfig{
	MaxRetries:      3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

var (
	ErrRateLimited      = errors.New("rate limited")
	ErrServerError      = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	ErrNoHTTPClient     = errors.New("http client not configured")
	ErrInvalidConfig    = errors.New("invalid backoff configuration")
)

// StatusError reports a non-2xx response that is not retried.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnexpectedStatus, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// NewBreaker returns a circuit breaker with the settings shared by all outbound
// clients. Only transport errors, 429 and 5xx count as failures.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(breakerSettings(name))
}

// NewInteractiveBreaker returns a breaker that never opens. It suits callers
// driven by a person, where every failure is reported as it happens and the
// next attempt must reach the server.
func NewInteractiveBreaker(name string) *gobreaker.CircuitBreaker {
	st := breakerSettings(name)
	st.ReadyToTrip = func(gobreaker.Counts) bool { return false }
	return gobreaker.NewCircuitBreaker(st)
}

func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: countsAsSuccess,
	}
}

// countsAsSuccess keeps permanent client errors from tripping the breaker; the
// remote end answered, the request was wrong.
func countsAsSuccess(err error) bool {
	var statusErr *StatusError
	return err == nil || errors.As(err, &statusErr)
}

// passThrough lists statuses handed back to the caller as a response instead of
// an error. They are neither retried nor counted against the breaker.
var passThrough = map[int]bool{
	http.StatusNotFound: true,
}

// Do executes the request with retries, exponential backoff and a circuit breaker.
// 429, 5xx and transport errors are retried; other non-2xx statuses fail fast,
// except 404 which is returned as a response for the caller to interpret.
func Do(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, ErrNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, ErrInvalidConfig
	}

	var attempt int

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}

		// Ensure the request obeys context cancellation.
		req = req.WithContext(ctx)

		var permanent error
		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			switch {
			case resp.StatusCode >= 200 && resp.StatusCode < 300, passThrough[resp.StatusCode]:
				return resp, nil
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, ErrRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", ErrServerError, resp.StatusCode)
			default:
				resp.Body.Close()
				permanent = &StatusError{StatusCode: resp.StatusCode}
				return nil, permanent
			}
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		if permanent != nil {
			return nil, permanent
		}

		if attempt >= cfg.Backoff.MaxRetries {
			return nil, err
		}

		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
