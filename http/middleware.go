package http

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notegate/stats"
)

// BearerAuth creates middleware that enforces a static bearer token.
// An empty token disables the check entirely (open mode).
func BearerAuth(token string) func(http.Handler) http.Handler {
	if token == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	expected := []byte("Bearer " + token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(header, expected) != 1 {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Bandwidth creates middleware that reports request and response body
// sizes to the tracker, keyed by the matched chi route pattern. Requests
// that matched no route land in the tracker's unknown bucket.
//
// Received bytes go to the tracker before the handler runs, so a stats
// snapshot taken mid-request includes its own body. The request count and
// sent bytes are recorded after the handler finishes.
func Bandwidth(tracker *stats.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received := r.ContentLength

			// Chunked bodies have no declared length; count what the
			// handler actually reads instead.
			var counter *countingReadCloser
			if received < 0 {
				received = 0
				if r.Body != nil {
					counter = &countingReadCloser{rc: r.Body}
					r.Body = counter
				}
			} else {
				tracker.AddReceived(received)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if counter != nil {
				received = counter.n
				tracker.AddReceived(received)
			}

			// The route pattern is only resolved after routing ran.
			endpoint := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				endpoint = rctx.RoutePattern()
			}

			tracker.Record(endpoint, received, int64(ww.BytesWritten()))
		})
	}
}

type countingReadCloser struct {
	rc io.ReadCloser
	n  int64
}

func (c *countingReadCloser) Read(p []byte) (int, error) {
	n, err := c.rc.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReadCloser) Close() error {
	return c.rc.Close()
}
