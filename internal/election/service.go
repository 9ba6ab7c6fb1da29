package election

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/audit"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/metrics"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/storage"
)

// Service owns the authoritative in-memory mirrors of the three collections
// and every mutation against them. One mutex serializes mutations so each one
// is an explicit transaction boundary: read the current collection, apply one
// change, write back. Within this process that closes the race between two
// concurrent votes for the same voter; across processes the change signal is
// a refresh hint only, not mutual exclusion.
type Service struct {
	gateway    *Gateway
	audit      *audit.Publisher
	challenges *Challenges
	metrics    *metrics.Metrics
	logger     *slog.Logger

	mu         sync.Mutex
	voters     []domain.Voter
	candidates []domain.Candidate
	log        []domain.AuditEntry
}

func NewService(gateway *Gateway, publisher *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		gateway:    gateway,
		audit:      publisher,
		challenges: NewChallenges(),
		metrics:    m,
		logger:     logger,
	}
}

// Load fetches all three resources concurrently and replaces the mirrors
// wholesale. On failure the error is logged and the mirrors keep their
// previous, possibly empty, state.
func (s *Service) Load(ctx context.Context) error {
	var (
		voters     []domain.Voter
		candidates []domain.Candidate
		entries    []domain.AuditEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		candidates, err = s.gateway.ListCandidates(gctx)
		return err
	})
	g.Go(func() (err error) {
		voters, err = s.gateway.ListVoters(gctx)
		return err
	})
	g.Go(func() (err error) {
		entries, err = s.gateway.ListAuditEntries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to load election data", "error", err)
		return err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	s.mu.Lock()
	s.voters = voters
	s.candidates = candidates
	s.log = entries
	s.mu.Unlock()

	s.publishTurnout()
	return nil
}

// Watch re-runs Load whenever another process signals a change to one of the
// election keys. It blocks until ctx is done.
func (s *Service) Watch(ctx context.Context, notifier storage.Notifier) error {
	ch, cancel, err := notifier.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	watched := make(map[string]bool, len(WatchedKeys))
	for _, key := range WatchedKeys {
		watched[key] = true
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case key, ok := <-ch:
			if !ok {
				return nil
			}
			if !watched[key] {
				continue
			}
			if err := s.Load(ctx); err != nil {
				s.logger.WarnContext(ctx, "reload after change signal failed", "key", key, "error", err)
			}
		}
	}
}

// NewChallenge issues an arithmetic challenge for a registration form.
func (s *Service) NewChallenge() Challenge {
	return s.challenges.Issue()
}

// RegisterVoter validates a submission and appends a new voter. The password
// is bcrypt-hashed before it is persisted; duplicate email and Aadhaar
// checks run against the persisted collection, not the mirror, so two
// registrations in a row cannot both pass.
func (s *Service) RegisterVoter(ctx context.Context, reg domain.Registration) (domain.Voter, error) {
	if err := validateRegistration(reg); err != nil {
		return domain.Voter{}, err
	}
	if !s.challenges.Verify(reg.ChallengeID, reg.ChallengeAnswer) {
		return domain.Voter{}, domain.NewError(domain.CodeValidation, "Incorrect CAPTCHA answer.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	voters, err := s.gateway.ListVoters(ctx)
	if err != nil {
		return domain.Voter{}, domain.NewError(domain.CodeInternal, "registration is temporarily unavailable")
	}
	for _, v := range voters {
		if v.Email == reg.Email {
			return domain.Voter{}, domain.NewError(domain.CodeConflict, "Email already exists.")
		}
		if v.AadhaarNumber == reg.AadhaarNumber {
			return domain.Voter{}, domain.NewError(domain.CodeConflict, "Aadhaar number already registered.")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Voter{}, domain.NewError(domain.CodeInternal, "registration failed")
	}

	voter := domain.Voter{
		ID:            uuid.NewString(),
		FullName:      reg.FullName,
		Email:         reg.Email,
		AadhaarNumber: reg.AadhaarNumber,
		PasswordHash:  string(hash),
	}
	voters = append(voters, voter)
	if err := s.gateway.SaveVoters(ctx, voters); err != nil {
		return domain.Voter{}, domain.NewError(domain.CodeInternal, "registration failed")
	}

	s.voters = voters
	s.metrics.IncrementVotersRegistered()
	s.publishTurnoutLocked()
	return voter.Public(), nil
}

// CastVote spends the voter's single ballot on the given candidate. It
// returns false without mutating anything when the voter is unknown or has
// already voted. The candidate tally increases by exactly 1 and only here.
func (s *Service) CastVote(ctx context.Context, voterID, candidateID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voters, err := s.gateway.ListVoters(ctx)
	if err != nil {
		return false, domain.NewError(domain.CodeInternal, "voting is temporarily unavailable")
	}

	idx := -1
	for i, v := range voters {
		if v.ID == voterID {
			idx = i
			break
		}
	}
	if idx < 0 || voters[idx].HasVoted() {
		return false, nil
	}

	choice := candidateID
	voters[idx].VotedCandidateID = &choice
	if err := s.gateway.SaveVoters(ctx, voters); err != nil {
		return false, domain.NewError(domain.CodeInternal, "voting is temporarily unavailable")
	}

	candidates, err := s.gateway.ListCandidates(ctx)
	if err != nil {
		return false, domain.NewError(domain.CodeInternal, "voting is temporarily unavailable")
	}
	for i := range candidates {
		if candidates[i].ID == candidateID {
			candidates[i].Votes++
			break
		}
	}
	if err := s.gateway.SaveCandidates(ctx, candidates); err != nil {
		return false, domain.NewError(domain.CodeInternal, "voting is temporarily unavailable")
	}

	s.voters = voters
	s.candidates = candidates
	s.metrics.IncrementVotesCast()
	s.publishTurnoutLocked()
	return true, nil
}

// AddCandidate creates a candidate with a zero tally and audits the action.
func (s *Service) AddCandidate(ctx context.Context, input domain.CandidateInput) (domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.gateway.ListCandidates(ctx)
	if err != nil {
		return domain.Candidate{}, domain.NewError(domain.CodeInternal, "candidate management is temporarily unavailable")
	}

	candidate := domain.Candidate{
		ID:          "c" + uuid.NewString(),
		Name:        input.Name,
		Party:       input.Party,
		PhotoURL:    input.PhotoURL,
		Description: input.Description,
		Votes:       0,
	}
	candidates = append(candidates, candidate)
	if err := s.gateway.SaveCandidates(ctx, candidates); err != nil {
		return domain.Candidate{}, domain.NewError(domain.CodeInternal, "candidate management is temporarily unavailable")
	}

	s.candidates = candidates
	s.appendAudit(ctx, "Added candidate: "+candidate.Name)
	s.metrics.IncrementAdminMutation("add")
	return candidate, nil
}

// UpdateCandidate replaces the editable fields of an existing candidate. The
// tally is never touched through this path.
func (s *Service) UpdateCandidate(ctx context.Context, id string, input domain.CandidateInput) (domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.gateway.ListCandidates(ctx)
	if err != nil {
		return domain.Candidate{}, domain.NewError(domain.CodeInternal, "candidate management is temporarily unavailable")
	}

	idx := -1
	for i, c := range candidates {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Candidate{}, domain.NewError(domain.CodeNotFound, "candidate not found")
	}

	candidates[idx].Name = input.Name
	candidates[idx].Party = input.Party
	candidates[idx].PhotoURL = input.PhotoURL
	candidates[idx].Description = input.Description
	if err := s.gateway.SaveCandidates(ctx, candidates); err != nil {
		return domain.Candidate{}, domain.NewError(domain.CodeInternal, "candidate management is temporarily unavailable")
	}

	s.candidates = candidates
	s.appendAudit(ctx, "Updated candidate: "+candidates[idx].Name)
	s.metrics.IncrementAdminMutation("update")
	return candidates[idx], nil
}

// DeleteCandidate removes a candidate. Deleting an unknown id is a no-op and
// leaves no audit entry.
func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.gateway.ListCandidates(ctx)
	if err != nil {
		return domain.NewError(domain.CodeInternal, "candidate management is temporarily unavailable")
	}

	name := ""
	kept := candidates[:0:0]
	for _, c := range candidates {
		if c.ID == id {
			name = c.Name
			continue
		}
		kept = append(kept, c)
	}
	if name == "" {
		return nil
	}

	if err := s.gateway.SaveCandidates(ctx, kept); err != nil {
		return domain.NewError(domain.CodeInternal, "candidate management is temporarily unavailable")
	}

	s.candidates = kept
	s.appendAudit(ctx, "Deleted candidate: "+name)
	s.metrics.IncrementAdminMutation("delete")
	return nil
}

// Voters returns a snapshot of the voter mirror with credentials stripped.
func (s *Service) Voters() []domain.Voter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Voter, len(s.voters))
	for i, v := range s.voters {
		out[i] = v.Public()
	}
	return out
}

// Candidates returns a snapshot of the candidate mirror.
func (s *Service) Candidates() []domain.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Candidate{}, s.candidates...)
}

// AuditLog returns a snapshot of the audit mirror, newest entry first.
func (s *Service) AuditLog() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEntry{}, s.log...)
}

// VoterByEmail reads the persisted collection so logins observe voters
// registered by sibling processes.
func (s *Service) VoterByEmail(ctx context.Context, email string) (domain.Voter, error) {
	voters, err := s.gateway.ListVoters(ctx)
	if err != nil {
		return domain.Voter{}, err
	}
	for _, v := range voters {
		if v.Email == email {
			return v, nil
		}
	}
	return domain.Voter{}, storage.ErrNotFound
}

// VoterByID reads the persisted collection by voter id.
func (s *Service) VoterByID(ctx context.Context, id string) (domain.Voter, error) {
	voters, err := s.gateway.ListVoters(ctx)
	if err != nil {
		return domain.Voter{}, err
	}
	for _, v := range voters {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Voter{}, storage.ErrNotFound
}

// Analytics summarizes turnout from the mirrors.
type Analytics struct {
	TotalVotes       int              `json:"totalVotes"`
	RegisteredVoters int              `json:"registeredVoters"`
	VotersWhoVoted   int              `json:"votersWhoVoted"`
	TurnoutPercent   float64          `json:"turnoutPercent"`
	Tallies          []CandidateTally `json:"tallies"`
}

// CandidateTally is one row of the per-candidate vote breakdown.
type CandidateTally struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
	Votes int    `json:"votes"`
}

// Analytics computes the turnout summary the admin dashboard renders.
func (s *Service) Analytics() Analytics {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := Analytics{
		RegisteredVoters: len(s.voters),
		Tallies:          make([]CandidateTally, 0, len(s.candidates)),
	}
	for _, c := range s.candidates {
		a.TotalVotes += c.Votes
		a.Tallies = append(a.Tallies, CandidateTally{ID: c.ID, Name: c.Name, Party: c.Party, Votes: c.Votes})
	}
	for _, v := range s.voters {
		if v.HasVoted() {
			a.VotersWhoVoted++
		}
	}
	a.TurnoutPercent = turnoutPercent(a.VotersWhoVoted, a.RegisteredVoters)
	return a
}

// appendAudit is best effort relative to the mutation it describes: the
// candidate change has already been persisted, so an audit failure is logged
// rather than unwinding the mutation.
func (s *Service) appendAudit(ctx context.Context, action string) {
	entry, err := s.audit.Emit(ctx, action)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to append audit entry", "action", action, "error", err)
		return
	}
	s.log = append([]domain.AuditEntry{entry}, s.log...)
}

func (s *Service) publishTurnout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishTurnoutLocked()
}

func (s *Service) publishTurnoutLocked() {
	voted := 0
	for _, v := range s.voters {
		if v.HasVoted() {
			voted++
		}
	}
	s.metrics.SetTurnout(turnoutPercent(voted, len(s.voters)))
}

func turnoutPercent(voted, registered int) float64 {
	if registered == 0 {
		return 0
	}
	return math.Round(float64(voted)/float64(registered)*100*100) / 100
}
