package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/spillover/internal/ratelimit"
	"github.com/desertthunder/spillover/internal/shared"
)

// TokenCookie is the session cookie set by the OAuth callback.
const TokenCookie = "spillover_token"

type contextKey string

const tokenKey contextKey = "token"

// TokenFromContext returns the bearer token attached by the gate.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// Gate is the admission layer every API entry point passes through. It
// derives a client identity, checks the operation's rate-limit bucket, and
// resolves the caller's bearer token before the handler runs.
type Gate struct {
	limiter  *ratelimit.Limiter
	windowMS int
	logger   *log.Logger
}

// NewGate builds a Gate around a shared limiter. windowMS applies to every
// operation bucket.
func NewGate(limiter *ratelimit.Limiter, windowMS int, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.Default()
	}
	return &Gate{limiter: limiter, windowMS: windowMS, logger: logger}
}

// ClientIdentifier derives the caller's identity: the first hop of
// X-Forwarded-For when present, otherwise the connection's remote address.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}

	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return "unknown"
}

// ResolveToken extracts the caller's bearer token from the Authorization
// header, falling back to the session cookie. Empty when neither is present.
func ResolveToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// Admit wraps a handler with the admission check for one operation: rate
// limit first, then token resolution when requireToken is set. The resolved
// token rides on the request context.
func (g *Gate) Admit(op string, maxRequests int, requireToken bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := ClientIdentifier(r)

		decision := g.limiter.Check(op+":"+client, g.windowMS, maxRequests)
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))

		if !decision.Allowed {
			g.logger.Warn("rate limit exceeded", "operation", op, "client", client)
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(decision.ResetIn.Seconds())+1))
			writeError(w, fmt.Errorf("%w: retry in %s", shared.ErrRateLimited, decision.ResetIn.Round(time.Second)))
			return
		}

		if requireToken {
			token := ResolveToken(r)
			if token == "" {
				writeError(w, fmt.Errorf("%w: missing bearer token", shared.ErrUnauthorized))
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), tokenKey, token))
		}

		next(w, r)
	}
}

// statusFor maps the error taxonomy to HTTP status codes. Unknown errors
// are treated as upstream failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrUnsupportedLink),
		errors.Is(err, shared.ErrTitleLookup),
		errors.Is(err, shared.ErrTrackNotFound),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders an error as the JSON envelope. Upstream failures get a
// generic message so catalog details never leak to the caller.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "upstream request failed"
	}

	writeJSON(w, status, map[string]string{"error": message})
}

// statusWriter records the status code written by the wrapped handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs one line per request with a generated request ID,
// the response status, and the handling duration.
func LoggingMiddleware(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			logger.Info("request",
				"id", shared.GenerateID(),
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
				"client", ClientIdentifier(r),
			)
		})
	}
}

// RecoveryMiddleware converts handler panics into 500 responses.
func RecoveryMiddleware(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic", "path", r.URL.Path, "panic", rec)
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware answers preflight requests and sets the response headers
// that let the browser extension call the API.
func CORSMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
