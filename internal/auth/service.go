package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
	jwttoken "github.com/karthik14985-bit/voting-system-by-Karthi/internal/jwt_token"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/ratelimit"
)

// Role values carried in session tokens.
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// adminSubject is the token subject for admin sessions, which have no voter
// record behind them.
const adminSubject = "admin"

// VoterDirectory is how the session layer looks voters up. It reads the
// persisted collection so logins observe registrations from sibling
// processes.
type VoterDirectory interface {
	VoterByEmail(ctx context.Context, email string) (domain.Voter, error)
	VoterByID(ctx context.Context, id string) (domain.Voter, error)
}

// Service implements the session/identity layer: voter login against the
// registered voter list, admin login against one configured credential pair,
// session restore and logout. Tokens are signed JWTs; passwords are verified
// against bcrypt hashes.
type Service struct {
	voters   VoterDirectory
	sessions SessionStore
	tokens   *jwttoken.JWTService
	limiter  *ratelimit.LoginLimiter
	logger   *slog.Logger

	adminEmail    string
	adminPassword string
	sessionTTL    time.Duration
}

func NewService(
	voters VoterDirectory,
	sessions SessionStore,
	tokens *jwttoken.JWTService,
	limiter *ratelimit.LoginLimiter,
	logger *slog.Logger,
	adminEmail, adminPassword string,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		voters:        voters,
		sessions:      sessions,
		tokens:        tokens,
		limiter:       limiter,
		logger:        logger,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		sessionTTL:    sessionTTL,
	}
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token string        `json:"token"`
	Voter *domain.Voter `json:"voter,omitempty"`
}

// Login authenticates a voter by email and password. Failure performs no
// state change and reports one fixed message regardless of which check
// failed.
func (s *Service) Login(ctx context.Context, email, password, userAgent string) (LoginResult, error) {
	if s.limiter.Locked(email) {
		return LoginResult{}, domain.NewError(domain.CodeRateLimited, "Too many failed login attempts. Please try again later.")
	}

	voter, err := s.voters.VoterByEmail(ctx, email)
	if err != nil {
		s.limiter.RecordFailure(email)
		return LoginResult{}, domain.NewError(domain.CodeUnauthorized, "Invalid email or password.")
	}
	if bcrypt.CompareHashAndPassword([]byte(voter.PasswordHash), []byte(password)) != nil {
		s.limiter.RecordFailure(email)
		return LoginResult{}, domain.NewError(domain.CodeUnauthorized, "Invalid email or password.")
	}
	s.limiter.Clear(email)

	session := s.newSession(domain.PrincipalVoter, voter.ID, email, userAgent)
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to save voter session", "error", err)
		return LoginResult{}, domain.NewError(domain.CodeInternal, "login failed")
	}

	token, err := s.tokens.GenerateToken(voter.ID, session.ID, RoleVoter, s.sessionTTL)
	if err != nil {
		return LoginResult{}, domain.NewError(domain.CodeInternal, "login failed")
	}

	public := voter.Public()
	return LoginResult{Token: token, Voter: &public}, nil
}

// AdminLogin authenticates against the single configured administrator
// credential pair using constant-time comparison.
func (s *Service) AdminLogin(ctx context.Context, email, password, userAgent string) (LoginResult, error) {
	if s.limiter.Locked(email) {
		return LoginResult{}, domain.NewError(domain.CodeRateLimited, "Too many failed login attempts. Please try again later.")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword))
	if emailOK&passwordOK != 1 {
		s.limiter.RecordFailure(email)
		return LoginResult{}, domain.NewError(domain.CodeUnauthorized, "Invalid admin credentials.")
	}
	s.limiter.Clear(email)

	session := s.newSession(domain.PrincipalAdmin, "", email, userAgent)
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to save admin session", "error", err)
		return LoginResult{}, domain.NewError(domain.CodeInternal, "login failed")
	}

	token, err := s.tokens.GenerateToken(adminSubject, session.ID, RoleAdmin, s.sessionTTL)
	if err != nil {
		return LoginResult{}, domain.NewError(domain.CodeInternal, "login failed")
	}
	return LoginResult{Token: token}, nil
}

// Logout destroys the session. It is idempotent; logging out an unknown
// session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Restore resolves a validated token's session back into a principal. A
// missing or expired session yields the unauthenticated principal, not an
// error: restore never mutates state.
func (s *Service) Restore(ctx context.Context, sessionID string) (domain.Principal, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return domain.Principal{Kind: domain.PrincipalNone}, nil
	}
	if session.Expired(time.Now()) {
		return domain.Principal{Kind: domain.PrincipalNone}, nil
	}

	switch session.Kind {
	case domain.PrincipalAdmin:
		return domain.Principal{Kind: domain.PrincipalAdmin}, nil
	case domain.PrincipalVoter:
		voter, err := s.voters.VoterByID(ctx, session.VoterID)
		if err != nil {
			return domain.Principal{Kind: domain.PrincipalNone}, nil
		}
		public := voter.Public()
		return domain.Principal{Kind: domain.PrincipalVoter, Voter: &public}, nil
	default:
		return domain.Principal{Kind: domain.PrincipalNone}, nil
	}
}

func (s *Service) newSession(kind domain.PrincipalKind, voterID, email, userAgent string) domain.Session {
	now := time.Now()
	return domain.Session{
		ID:         uuid.NewString(),
		Kind:       kind,
		VoterID:    voterID,
		Email:      email,
		DeviceName: ParseUserAgent(userAgent),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionTTL),
	}
}
