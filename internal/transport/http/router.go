package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/auth"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/metrics"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/middleware"
)

// NewRouter wires all public endpoints. Candidate listing and the
// registration seams are public; voting requires a voter token; voter
// listing, audit log, analytics and candidate management require an admin
// token.
func NewRouter(
	authHandler *AuthHandler,
	electionHandler *ElectionHandler,
	validator middleware.JWTValidator,
	m *metrics.Metrics,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		r.Get("/candidates", electionHandler.handleListCandidates)
		r.Get("/register/challenge", electionHandler.handleChallenge)
		r.Post("/voter/register", electionHandler.handleRegister)
		r.Post("/voter/login", authHandler.handleVoterLogin)
		r.Post("/admin/login", authHandler.handleAdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(validator, logger))
			r.Get("/session", authHandler.handleSession)
			r.Post("/logout", authHandler.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleVoter, logger))
				r.Post("/vote", electionHandler.handleCastVote)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin, logger))
				r.Get("/users", electionHandler.handleListVoters)
				r.Get("/logs", electionHandler.handleListAuditLog)
				r.Get("/analytics", electionHandler.handleAnalytics)
				r.Post("/candidates", electionHandler.handleAddCandidate)
				r.Put("/candidates/{id}", electionHandler.handleUpdateCandidate)
				r.Delete("/candidates/{id}", electionHandler.handleDeleteCandidate)
			})
		})
	})

	return r
}
