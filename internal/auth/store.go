package auth

import (
	"context"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
)

// SessionStore persists authenticated sessions. Implementations return
// storage.ErrNotFound (optionally wrapped) for unknown ids so the service can
// treat missing and expired sessions uniformly.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	FindByID(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}
