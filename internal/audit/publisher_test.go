package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
)

type captureStore struct {
	entries []domain.AuditEntry
	err     error
}

func (c *captureStore) Append(_ context.Context, entry domain.AuditEntry) error {
	if c.err != nil {
		return c.err
	}
	c.entries = append(c.entries, entry)
	return nil
}

func TestPublisherEmit(t *testing.T) {
	t.Run("stamps id and timestamp and persists the entry", func(t *testing.T) {
		store := &captureStore{}
		fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		p := NewPublisher(store)
		p.now = func() time.Time { return fixed }

		entry, err := p.Emit(context.Background(), "Added candidate: Meera Iyer")
		require.NoError(t, err)

		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "Added candidate: Meera Iyer", entry.Action)
		assert.Equal(t, fixed, entry.Timestamp)
		require.Len(t, store.entries, 1)
		assert.Equal(t, entry, store.entries[0])
	})

	t.Run("distinct entries get distinct ids", func(t *testing.T) {
		store := &captureStore{}
		p := NewPublisher(store)

		first, err := p.Emit(context.Background(), "one")
		require.NoError(t, err)
		second, err := p.Emit(context.Background(), "two")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("store failure surfaces to the caller", func(t *testing.T) {
		store := &captureStore{err: errors.New("sink down")}
		p := NewPublisher(store)

		_, err := p.Emit(context.Background(), "one")
		require.Error(t, err)
	})
}
