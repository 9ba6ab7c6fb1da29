package election

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/storage"
)

// ResourceKind names one of the persisted collections.
type ResourceKind string

const (
	KindCandidates ResourceKind = "candidates"
	KindVoters     ResourceKind = "users"
	KindAuditLog   ResourceKind = "logs"
)

// WatchedKeys lists the storage keys whose change signal should trigger a
// reload of the in-memory mirrors.
var WatchedKeys = []string{
	string(KindCandidates),
	string(KindVoters),
	string(KindAuditLog),
}

// Gateway exposes the three logical resources over the storage port, one key
// per resource. Calls optionally sleep a random latency to mimic a slow
// network; the delay is cosmetic and never a retry mechanism.
type Gateway struct {
	kv storage.KV

	simulateLatency bool
	latencyMin      time.Duration
	latencyMax      time.Duration
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithSimulatedLatency pads every call with a random delay in [min, max].
func WithSimulatedLatency(min, max time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.simulateLatency = true
		g.latencyMin = min
		g.latencyMax = max
	}
}

func NewGateway(kv storage.KV, opts ...GatewayOption) *Gateway {
	g := &Gateway{kv: kv}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ListCandidates returns the candidate collection, seeding the fixed
// placeholder records on first access so a fresh deployment has something to
// vote on.
func (g *Gateway) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	g.delay()
	raw, err := g.kv.Get(ctx, string(KindCandidates))
	if errors.Is(err, storage.ErrNotFound) {
		seed := seedCandidates()
		if err := g.save(ctx, KindCandidates, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return candidates, nil
}

// ListVoters returns the voter collection, empty when nobody has registered.
func (g *Gateway) ListVoters(ctx context.Context) ([]domain.Voter, error) {
	g.delay()
	return listResource[domain.Voter](ctx, g, KindVoters)
}

// ListAuditEntries returns the audit log as persisted, newest entry first.
func (g *Gateway) ListAuditEntries(ctx context.Context) ([]domain.AuditEntry, error) {
	g.delay()
	return listResource[domain.AuditEntry](ctx, g, KindAuditLog)
}

// SaveCandidates persists the whole candidate collection.
func (g *Gateway) SaveCandidates(ctx context.Context, candidates []domain.Candidate) error {
	g.delay()
	return g.save(ctx, KindCandidates, candidates)
}

// SaveVoters persists the whole voter collection.
func (g *Gateway) SaveVoters(ctx context.Context, voters []domain.Voter) error {
	g.delay()
	return g.save(ctx, KindVoters, voters)
}

// Append prepends one audit entry and persists the log, satisfying
// audit.Store. The log reads back newest first.
func (g *Gateway) Append(ctx context.Context, entry domain.AuditEntry) error {
	g.delay()
	entries, err := listResource[domain.AuditEntry](ctx, g, KindAuditLog)
	if err != nil {
		return err
	}
	entries = append([]domain.AuditEntry{entry}, entries...)
	return g.save(ctx, KindAuditLog, entries)
}

func (g *Gateway) save(ctx context.Context, kind ResourceKind, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := g.kv.Set(ctx, string(kind), raw); err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	return nil
}

func listResource[T any](ctx context.Context, g *Gateway, kind ResourceKind) ([]T, error) {
	raw, err := g.kv.Get(ctx, string(kind))
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return out, nil
}

// delay runs to completion once started; there are no cancellation or timeout
// semantics on the simulated network.
func (g *Gateway) delay() {
	if !g.simulateLatency || g.latencyMax <= g.latencyMin {
		return
	}
	time.Sleep(g.latencyMin + time.Duration(rand.Int63n(int64(g.latencyMax-g.latencyMin))))
}

func seedCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:          "c1",
			Name:        "Aarav Sharma",
			Party:       "Progressive Party",
			PhotoURL:    "https://picsum.photos/seed/aarav/400/400",
			Description: "Focused on economic growth and technological innovation.",
			Votes:       125,
		},
		{
			ID:          "c2",
			Name:        "Saanvi Patel",
			Party:       "Unity Alliance",
			PhotoURL:    "https://picsum.photos/seed/saanvi/400/400",
			Description: "Advocating for social justice and environmental protection.",
			Votes:       110,
		},
		{
			ID:          "c3",
			Name:        "Vikram Singh",
			Party:       "National Vision Party",
			PhotoURL:    "https://picsum.photos/seed/vikram/400/400",
			Description: "Championing traditional values and national security.",
			Votes:       95,
		},
	}
}
