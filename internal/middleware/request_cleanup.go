package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes bounds how much of an unread workout upload is discarded before closing;
// a larger leftover body is closed without draining and the connection is not reused.
const maxDrainBytes = 1 << 20

// DrainAndCloseRequest drains whatever the handler left unread in the request body and closes it,
// so the underlying connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
				_ = r.Body.Close()
			}
		})
	}
}
