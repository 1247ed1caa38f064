package services

import (
	"context"
	"errors"
	"testing"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/stretchr/testify/assert"
)

type fakeReplayStore struct {
	seen map[string]bool
	err  error
}

func newFakeReplayStore() *fakeReplayStore {
	return &fakeReplayStore{seen: make(map[string]bool)}
}

func (f *fakeReplayStore) Seen(ctx context.Context, eventID string) (bool, error) {
	return f.seen[eventID], f.err
}

func (f *fakeReplayStore) MarkProcessed(ctx context.Context, eventID string) error {
	if f.err != nil {
		return f.err
	}
	f.seen[eventID] = true
	return nil
}

func TestIsDuplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("no store configured", func(t *testing.T) {
		s := &SyncService{}
		assert.False(t, s.IsDuplicate(ctx, "msg_1"))
	})

	t.Run("empty event id", func(t *testing.T) {
		s := &SyncService{replay: newFakeReplayStore()}
		assert.False(t, s.IsDuplicate(ctx, ""))
	})

	t.Run("first delivery", func(t *testing.T) {
		s := &SyncService{replay: newFakeReplayStore()}
		assert.False(t, s.IsDuplicate(ctx, "msg_1"))
	})

	t.Run("processed delivery", func(t *testing.T) {
		store := newFakeReplayStore()
		store.seen["msg_1"] = true
		s := &SyncService{replay: store}
		assert.True(t, s.IsDuplicate(ctx, "msg_1"))
	})

	t.Run("broken store never drops events", func(t *testing.T) {
		s := &SyncService{replay: &fakeReplayStore{err: errors.New("redis down")}}
		assert.False(t, s.IsDuplicate(ctx, "msg_1"))
	})
}

func TestReplay_FailedDeliveryStaysRetriable(t *testing.T) {
	ctx := context.Background()
	store := newFakeReplayStore()
	s := &SyncService{replay: store}

	// First delivery is not a duplicate. Processing fails, so nothing gets
	// marked; the provider's retry of the same id must be processed again.
	assert.False(t, s.IsDuplicate(ctx, "msg_1"))
	assert.False(t, s.IsDuplicate(ctx, "msg_1"))

	// After a successful pass the id is marked and retries become no-ops.
	s.MarkProcessed(ctx, "msg_1")
	assert.True(t, s.IsDuplicate(ctx, "msg_1"))
}

func TestHandleEvent_UnknownTypeIsNoOp(t *testing.T) {
	s := &SyncService{}
	err := s.HandleEvent(&dto.IdentityEvent{Type: "session.created"})
	assert.NoError(t, err)
}

func TestAnonymizedEmail(t *testing.T) {
	assert.Equal(t, "deleted_user_2abc@deleted.com", AnonymizedEmail("user_2abc"))
}

func TestDisplayName(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		first *string
		last  *string
		want  *string
	}{
		{"both parts", str("Ada"), str("Lovelace"), str("Ada Lovelace")},
		{"first only", str("Ada"), nil, str("Ada")},
		{"last only", nil, str("Lovelace"), str("Lovelace")},
		{"both nil", nil, nil, nil},
		{"empty strings", str(""), str(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := displayName(tt.first, tt.last)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestPrimaryEmail(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		email, ok := primaryEmail(&dto.IdentityEventData{
			EmailAddresses: []dto.EmailAddress{{EmailAddress: "a@b.com"}, {EmailAddress: "c@d.com"}},
		})
		assert.True(t, ok)
		assert.Equal(t, "a@b.com", email)
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := primaryEmail(&dto.IdentityEventData{})
		assert.False(t, ok)
	})

	t.Run("empty first address", func(t *testing.T) {
		_, ok := primaryEmail(&dto.IdentityEventData{
			EmailAddresses: []dto.EmailAddress{{EmailAddress: ""}},
		})
		assert.False(t, ok)
	})
}
