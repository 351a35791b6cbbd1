package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/liftstats/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 and counts it under the route that panicked.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					route := routeName(req)
					log.WithFields(log.Fields{
						"route": route,
						"owner": mux.Vars(req)["owner"],
					}).Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.WithLabelValues(route).Inc()
					}
					http.Error(respWriter, "internal error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
