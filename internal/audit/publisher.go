package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
)

// Store persists audit entries. It is append-only; implementations keep the
// log ordered newest first on read-back.
type Store interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
}

// Publisher captures structured audit entries. It stamps identity and
// timestamp so domain logic only supplies the action text, and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	now   func() time.Time
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store, now: time.Now}
}

// Emit appends one entry describing an administrative action and returns it.
func (p *Publisher) Emit(ctx context.Context, action string) (domain.AuditEntry, error) {
	entry := domain.AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Timestamp: p.now(),
	}
	if err := p.store.Append(ctx, entry); err != nil {
		return domain.AuditEntry{}, err
	}
	return entry, nil
}
