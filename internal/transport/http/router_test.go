package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/audit"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/auth"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/election"
	jwttoken "github.com/karthik14985-bit/voting-system-by-Karthi/internal/jwt_token"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/metrics"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/ratelimit"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/storage"
	"github.com/karthik14985-bit/voting-system-by-Karthi/pkg/testutil"
)

const (
	adminEmail    = "admin@election.gov"
	adminPassword = "Admin@1234"
)

// RouterSuite exercises the full HTTP surface against the in-memory backend,
// the same wiring the server uses minus Redis and Postgres.
type RouterSuite struct {
	suite.Suite
	handler  http.Handler
	election *election.Service
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWith(prometheus.NewRegistry())

	gateway := election.NewGateway(storage.NewMemory())
	s.election = election.NewService(gateway, audit.NewPublisher(gateway), m, logger)
	s.Require().NoError(s.election.Load(context.Background()))

	jwtService := jwttoken.NewJWTService("test-signing-key", "election-service")
	sessions := auth.NewService(
		s.election,
		auth.NewInMemorySessionStore(),
		jwtService,
		ratelimit.NewLoginLimiter(5, time.Minute),
		logger,
		adminEmail,
		adminPassword,
		time.Hour,
	)

	s.handler = NewRouter(
		NewAuthHandler(sessions, logger),
		NewElectionHandler(s.election, logger),
		jwttoken.NewJWTServiceAdapter(jwtService),
		m,
		logger,
	)
}

func (s *RouterSuite) do(req *http.Request, token string) *http.Response {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return testutil.DoRequest(s.handler, req).Result()
}

func (s *RouterSuite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

// register walks the challenge and registration seams and returns the voter.
func (s *RouterSuite) register(email, aadhaar string) domain.Voter {
	resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/register/challenge"), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var ch election.Challenge
	s.decode(resp, &ch)

	resp = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/voter/register", domain.Registration{
		FullName:        "Asha Rao",
		Age:             20,
		Email:           email,
		Password:        "Passw0rd",
		ConfirmPassword: "Passw0rd",
		AadhaarNumber:   aadhaar,
		ChallengeID:     ch.ID,
		ChallengeAnswer: ch.Num1 + ch.Num2,
	}), "")
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var voter domain.Voter
	s.decode(resp, &voter)
	return voter
}

func (s *RouterSuite) loginVoter(email, password string) auth.LoginResult {
	resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/voter/login", map[string]string{
		"email": email, "password": password,
	}), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var result auth.LoginResult
	s.decode(resp, &result)
	return result
}

func (s *RouterSuite) loginAdmin() string {
	resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/admin/login", map[string]string{
		"email": adminEmail, "password": adminPassword,
	}), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var result auth.LoginResult
	s.decode(resp, &result)
	return result.Token
}

func (s *RouterSuite) TestHealthz() {
	resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/healthz"), "")
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *RouterSuite) TestPublicCandidateListing() {
	resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/candidates"), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/json", resp.Header.Get("Content-Type"))

	var candidates []domain.Candidate
	s.decode(resp, &candidates)
	s.Require().Len(candidates, 3)
	s.Equal("Aarav Sharma", candidates[0].Name)
}

func (s *RouterSuite) TestVoterJourney() {
	voter := s.register("asha@example.com", "123456789012")
	s.NotEmpty(voter.ID)
	s.Empty(voter.PasswordHash)

	s.Run("login rejects a wrong password", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/voter/login", map[string]string{
			"email": "asha@example.com", "password": "wrong",
		}), "")
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		s.decode(resp, &body)
		s.Equal("Invalid email or password.", body["error"])
	})

	result := s.loginVoter("asha@example.com", "Passw0rd")

	s.Run("session restore identifies the voter", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/session"), result.Token)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var principal domain.Principal
		s.decode(resp, &principal)
		s.Equal(domain.PrincipalVoter, principal.Kind)
		s.Require().NotNil(principal.Voter)
		s.Equal(voter.ID, principal.Voter.ID)
	})

	s.Run("first vote succeeds", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/vote", map[string]string{
			"candidateId": "c1",
		}), result.Token)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var body castVoteResponse
		s.decode(resp, &body)
		s.True(body.Success)
	})

	s.Run("second vote is rejected with a conflict", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/vote", map[string]string{
			"candidateId": "c2",
		}), result.Token)
		s.Require().Equal(http.StatusConflict, resp.StatusCode)

		var body castVoteResponse
		s.decode(resp, &body)
		s.False(body.Success)
	})

	s.Run("logout invalidates the session", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/api/logout"), result.Token)
		s.Require().Equal(http.StatusNoContent, resp.StatusCode)

		resp = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/session"), result.Token)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var principal domain.Principal
		s.decode(resp, &principal)
		s.Equal(domain.PrincipalNone, principal.Kind)
	})
}

func (s *RouterSuite) TestRegistrationValidation() {
	s.Run("under-age submissions are rejected with the exact message", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/voter/register", domain.Registration{
			FullName: "Too Young", Age: 17, Email: "young@example.com",
			Password: "Passw0rd", ConfirmPassword: "Passw0rd", AadhaarNumber: "123456789012",
		}), "")
		s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		s.decode(resp, &body)
		s.Equal("You must be at least 18 years old to register.", body["error"])
	})

	s.Run("duplicate email maps to a conflict", func() {
		s.register("dup@example.com", "111122223333")

		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/register/challenge"), "")
		var ch election.Challenge
		s.decode(resp, &ch)

		resp = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/voter/register", domain.Registration{
			FullName: "Dup", Age: 30, Email: "dup@example.com",
			Password: "Passw0rd", ConfirmPassword: "Passw0rd", AadhaarNumber: "999988887777",
			ChallengeID: ch.ID, ChallengeAnswer: ch.Num1 + ch.Num2,
		}), "")
		s.Require().Equal(http.StatusConflict, resp.StatusCode)

		var body map[string]string
		s.decode(resp, &body)
		s.Equal("Email already exists.", body["error"])
	})
}

func (s *RouterSuite) TestAdminJourney() {
	s.Run("wrong admin credentials are rejected", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/admin/login", map[string]string{
			"email": adminEmail, "password": "nope",
		}), "")
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		s.decode(resp, &body)
		s.Equal("Invalid admin credentials.", body["error"])
	})

	token := s.loginAdmin()

	var created domain.Candidate
	s.Run("admin can add a candidate", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/candidates", domain.CandidateInput{
			Name: "Meera Iyer", Party: "Reform Front",
		}), token)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		s.decode(resp, &created)
		s.Equal(0, created.Votes)
	})

	s.Run("admin can update the candidate", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPut, "/api/candidates/"+created.ID, domain.CandidateInput{
			Name: "Meera K. Iyer", Party: "Reform Front",
		}), token)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var updated domain.Candidate
		s.decode(resp, &updated)
		s.Equal("Meera K. Iyer", updated.Name)
	})

	s.Run("candidate payload without a name is rejected", func() {
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/candidates", domain.CandidateInput{
			Party: "No Name Party",
		}), token)
		s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
	})

	s.Run("audit log lists the mutations newest first", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/logs"), token)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var entries []domain.AuditEntry
		s.decode(resp, &entries)
		s.Require().Len(entries, 2)
		s.Equal("Updated candidate: Meera K. Iyer", entries[0].Action)
		s.Equal("Added candidate: Meera Iyer", entries[1].Action)
	})

	s.Run("admin can delete the candidate", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodDelete, "/api/candidates/"+created.ID), token)
		s.Require().Equal(http.StatusNoContent, resp.StatusCode)
	})

	s.Run("voter listing never exposes password hashes", func() {
		s.register("asha@example.com", "123456789012")

		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/users"), token)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var voters []domain.Voter
		s.decode(resp, &voters)
		s.Require().Len(voters, 1)
		s.Empty(voters[0].PasswordHash)
	})

	s.Run("analytics summarizes the tallies", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/analytics"), token)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var a election.Analytics
		s.decode(resp, &a)
		s.Equal(1, a.RegisteredVoters)
		s.Equal(125+110+95, a.TotalVotes)
	})
}

func (s *RouterSuite) TestAccessControl() {
	s.register("asha@example.com", "123456789012")
	voterToken := s.loginVoter("asha@example.com", "Passw0rd").Token

	s.Run("protected routes require a token", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/users"), "")
		s.Equal(http.StatusUnauthorized, resp.StatusCode)

		resp = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/vote", map[string]string{"candidateId": "c1"}), "")
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("a garbage token is rejected", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/session"), "not-a-token")
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("a voter token cannot reach admin routes", func() {
		for _, path := range []string{"/api/users", "/api/logs", "/api/analytics"} {
			resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, path), voterToken)
			s.Equal(http.StatusForbidden, resp.StatusCode, path)
		}
	})

	s.Run("an admin token cannot vote", func() {
		adminToken := s.loginAdmin()
		resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/vote", map[string]string{
			"candidateId": "c1",
		}), adminToken)
		s.Equal(http.StatusForbidden, resp.StatusCode)
	})
}
