package middleware

import (
	"fmt"
	"net/http"

	"github.com/magiccap/imagehost/internal/response"
	"github.com/magiccap/imagehost/internal/telemetry"
)

// Recoverer converts downstream panics into 500 responses and forwards them
// to the error reporter. http.ErrAbortHandler is re-raised so aborted
// streaming responses keep the net/http behavior.
func Recoverer(reporter telemetry.Reporter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				reporter.CaptureRequest(r, fmt.Errorf("panic: %v", rec))
				response.InternalError(w)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
