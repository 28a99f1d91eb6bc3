package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/review/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

var ga = identity.Actor{UserID: "USER-1", Role: identity.RoleGA}

func TestQueueRepo_List(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Queue.Table, sheet.Grid{
		entity.Queue.Columns,
		{"mentorship", "MR-ada@tamu.edu", "ada@tamu.edu", "Tech", "No mentor in industry", "2025-09-01T12:00:00.000Z"},
	})
	got, err := NewQueueRepo(m, zap.NewNop().Sugar()).List(context.Background(), ga)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "No mentor in industry", got[0].Reason)
}

func TestQueueRepo_MissingTableIsEmpty(t *testing.T) {
	got, err := NewQueueRepo(sheet.NewMemoryStore(), zap.NewNop().Sugar()).List(context.Background(), ga)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
