// ABOUTME: HTTP request logging middleware.
// ABOUTME: Captures method, path, status, duration, request/response bodies, and stores in database.

package logging

import (
	"bufio"
	"bytes"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/2389/blockyard/internal/auth"
	"github.com/2389/blockyard/internal/store"
)

const maxBodySize = 10 * 1024 // 10KB limit for body capture

// Recorder persists request logs. *store.Store implements it.
type Recorder interface {
	LogRequest(log *store.RequestLog) error
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	// Capture response body (up to maxBodySize)
	if rw.body.Len() < maxBodySize {
		toCopy := len(b)
		if rw.body.Len()+toCopy > maxBodySize {
			toCopy = maxBodySize - rw.body.Len()
		}
		rw.body.Write(b[:toCopy])
	}
	return rw.ResponseWriter.Write(b)
}

// Hijack implements http.Hijacker
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}

// skip reports requests that are not worth a log row: health checks and
// admin page views. Admin writes are still logged.
func skip(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/favicon.ico":
		return true
	}
	if AreaFromPath(r.URL.Path) == AreaAdmin {
		return r.Method == http.MethodGet || r.Method == http.MethodHead
	}
	return false
}

// Middleware logs HTTP requests to rec without blocking the response.
func Middleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			// Capture the head of the request body and hand the handler the full stream
			var requestBody string
			if r.Body != nil {
				head, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
				if err == nil {
					requestBody = string(head)
				}
				r.Body = readCloser{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
			}

			start := time.Now()
			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     200,
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Milliseconds()

			ip := r.RemoteAddr
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
			}

			entry := &store.RequestLog{
				Area:         AreaFromPath(r.URL.Path),
				Method:       r.Method,
				Path:         r.URL.Path,
				StatusCode:   wrapped.statusCode,
				DurationMs:   int(duration),
				UserID:       auth.UserFromContext(r.Context()),
				IPAddress:    ip,
				UserAgent:    r.Header.Get("User-Agent"),
				RequestBody:  requestBody,
				ResponseBody: wrapped.body.String(),
			}

			// Fire and forget
			go func() {
				if err := rec.LogRequest(entry); err != nil {
					log.Printf("Failed to record request log: %v", err)
				}
			}()
		})
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}
