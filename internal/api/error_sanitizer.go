package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/pawsnclaws/intake-api/internal/pkg/httputil"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
)

// Internal errors (SQL text, provider responses, hostnames) never reach the
// client. The full error is logged with the request ID and only the public
// message is written.

// respondSafeError logs internalErr and writes {error: publicMsg}.
func respondSafeError(w http.ResponseWriter, r *http.Request, code int, internalErr error, publicMsg string) {
	if internalErr != nil {
		logger.Error("api: request failed",
			"status", code,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"public", publicMsg,
			"error", internalErr,
		)
	}
	httputil.Error(w, code, publicMsg)
}

// safeErrorMessage maps common internal error patterns to public-safe messages.
// 4xx errors describe user input and are returned as-is.
func safeErrorMessage(code int, internalErr error) string {
	if code < 500 {
		if internalErr != nil {
			return internalErr.Error()
		}
		return "Bad request"
	}

	if internalErr == nil {
		return "An internal error occurred"
	}

	errStr := strings.ToLower(internalErr.Error())

	switch {
	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp"):
		return "Service temporarily unavailable"

	case strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "context canceled"):
		return "Request timed out"

	case strings.Contains(errStr, "sql") ||
		strings.Contains(errStr, "pq:") ||
		strings.Contains(errStr, "query") ||
		strings.Contains(errStr, "scan") ||
		strings.Contains(errStr, "database"):
		return "A database error occurred"

	default:
		return "An internal error occurred"
	}
}
