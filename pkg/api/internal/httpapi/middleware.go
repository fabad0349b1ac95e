package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/docshelf/warden/cmd/contextx"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/metrics"
)

// ContextMiddleware stamps the request context with receipt time and the
// peer address so the security logger can attribute events.
func ContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := contextx.WithReceiptTime(r.Context(), time.Now())
		ctx = contextx.WithRemoteAddr(ctx, r.RemoteAddr)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RecoveryMiddleware(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error(recoveredFromPanic, fmt.Errorf("%v", p))
					respondJSON(w, logger, http.StatusInternalServerError, errorResponse{Error: "internal error"})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func MetricsMiddleware(statter metrics.Statter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			endpoint := endpointName(r)

			statter.Inc(fmt.Sprintf("warden.count.%s", endpoint), 1)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			var successValue int64
			if recorder.status < http.StatusInternalServerError {
				successValue = 1
			}
			statter.Gauge(fmt.Sprintf("warden.success.%s", endpoint), successValue)

			statter.TimingDuration(fmt.Sprintf("warden.requestduration.%s", endpoint), time.Since(start))
		})
	}
}

func endpointName(r *http.Request) string {
	path := strings.Trim(r.URL.Path, "/")
	path = strings.ReplaceAll(path, "/", ".")

	return strings.ToLower(r.Method) + "." + path
}
