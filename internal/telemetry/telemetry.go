// Package telemetry forwards unhandled failures to the error-reporting sink.
// Client mistakes (400s) and missing-object 404s are handled locally by their
// handlers and never reach a Reporter.
package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter receives failures the service could not recover from.
type Reporter interface {
	Capture(err error)
	CaptureRequest(r *http.Request, err error)
}

// SentryReporter reports to Sentry.
type SentryReporter struct{}

// NewSentryReporter initialises the Sentry SDK. Call Close before exit so
// buffered events are delivered.
func NewSentryReporter(dsn, environment string) (*SentryReporter, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	return &SentryReporter{}, nil
}

// Capture reports an error without request context.
func (*SentryReporter) Capture(err error) {
	sentry.CaptureException(err)
}

// CaptureRequest reports an error with the originating request attached.
func (*SentryReporter) CaptureRequest(r *http.Request, err error) {
	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(r)
	hub.CaptureException(err)
}

// Close flushes buffered events.
func (*SentryReporter) Close() {
	sentry.Flush(2 * time.Second)
}

// Nop is a Reporter that discards everything. Used when no DSN is configured
// and in tests.
type Nop struct{}

func (Nop) Capture(error)                       {}
func (Nop) CaptureRequest(*http.Request, error) {}
