// Package middleware wraps the outbound HTTP transport used to reach the
// product source and the upload API.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the id attached to every outbound request.
const RequestIDHeader = "X-Request-ID"

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r).
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Middleware decorates a transport.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain applies middlewares so that the first one listed is the outermost.
func Chain(base http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		base = middlewares[i](base)
	}
	return base
}

// NewClient returns an HTTP client with request ids, logging and panic
// recovery on top of the default transport.
func NewClient(timeout time.Duration, logger zerolog.Logger) *http.Client {
	logger = logger.With().Str("component", "http-client").Logger()
	return &http.Client{
		Timeout: timeout,
		Transport: Chain(http.DefaultTransport,
			Recovery(logger),
			RequestID(),
			Logging(logger),
		),
	}
}

// RequestID sets X-Request-ID on requests that do not carry one.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}

			// RoundTrippers must not modify the caller's request.
			r = r.Clone(r.Context())
			r.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// Logging logs outbound requests with timing information.
func Logging(logger zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(r)

			duration := time.Since(start)
			event := logger.Info()
			if err != nil {
				event = logger.Error().Err(err)
			} else if resp.StatusCode >= http.StatusBadRequest {
				event = logger.Warn()
			}
			if resp != nil {
				event = event.Int("status", resp.StatusCode)
			}
			event.
				Str("method", r.Method).
				Str("host", r.URL.Host).
				Str("path", r.URL.Path).
				Str("request_id", r.Header.Get(RequestIDHeader)).
				Dur("duration", duration).
				Msg("http request")

			return resp, err
		})
	}
}

// Recovery turns a panic in the wrapped transport into an error.
func Recovery(logger zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (resp *http.Response, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					resp = nil
					err = fmt.Errorf("transport panic: %v", rec)
				}
			}()

			return next.RoundTrip(r)
		})
	}
}
