package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler produces the same JSON error envelope. The message is the
// user-visible text; the code is stable for clients that branch on it.
func writeError(w http.ResponseWriter, err error) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		dErr = domain.NewError(domain.CodeInternal, "internal error")
	}
	writeJSON(w, toHTTPStatus(dErr.Code), map[string]string{
		"error": dErr.Message,
		"code":  string(dErr.Code),
	})
}

func toHTTPStatus(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
