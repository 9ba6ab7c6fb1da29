package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/auth"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/middleware"
)

// SessionService defines the session/identity operations the auth handler
// delegates to.
type SessionService interface {
	Login(ctx context.Context, email, password, userAgent string) (auth.LoginResult, error)
	AdminLogin(ctx context.Context, email, password, userAgent string) (auth.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Restore(ctx context.Context, sessionID string) (domain.Principal, error)
}

// AuthHandler is the thin HTTP layer over the session service.
type AuthHandler struct {
	sessions SessionService
	logger   *slog.Logger
}

func NewAuthHandler(sessions SessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleVoterLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.CodeValidation, "invalid request body"))
		return
	}

	result, err := h.sessions.Login(r.Context(), req.Email, req.Password, r.UserAgent())
	if err != nil {
		h.logger.WarnContext(r.Context(), "voter login rejected",
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewError(domain.CodeValidation, "invalid request body"))
		return
	}

	result, err := h.sessions.AdminLogin(r.Context(), req.Email, req.Password, r.UserAgent())
	if err != nil {
		h.logger.WarnContext(r.Context(), "admin login rejected",
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if err := h.sessions.Logout(r.Context(), sessionID); err != nil {
		h.logger.ErrorContext(r.Context(), "logout failed",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, domain.NewError(domain.CodeInternal, "logout failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSession is the restore-on-load phase: it resolves the bearer token's
// session back into a principal so the client can decide which views are
// reachable.
func (h *AuthHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	principal, err := h.sessions.Restore(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, domain.NewError(domain.CodeInternal, "session restore failed"))
		return
	}
	writeJSON(w, http.StatusOK, principal)
}
