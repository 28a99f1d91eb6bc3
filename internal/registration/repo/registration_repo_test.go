package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

var (
	header = append(append([]string{}, entity.Registrations.Columns...), "approved")
	ga     = identity.Actor{UserID: "USER-1", Email: "ga@tamu.edu", Role: identity.RoleGA}
	fixed  = time.Date(2025, 9, 1, 15, 4, 5, 0, time.UTC)
)

func newRepo(m *sheet.MemoryStore) *RegistrationRepo {
	r := NewRegistrationRepo(m, zap.NewNop().Sugar())
	r.now = func() time.Time { return fixed }
	return r
}

func row(id, email, needsReview, reviewStatus, approved string) []string {
	r := make([]string, len(header))
	r[0] = id
	r[2] = "Career Fair"
	r[5] = email
	r[12] = needsReview
	r[13] = reviewStatus
	r[19] = approved
	return r
}

func TestCreate_AppendsCanonicalRow(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Registrations.Table, sheet.Grid{header})

	reg, err := newRepo(m).Create(context.Background(), identity.Anonymous, entity.NewRegistration{
		EventName:    "Career Fair",
		StudentName:  "Ada Lovelace",
		StudentEmail: "ada@tamu.edu",
		MajorProgram: "CS",
		GradYear:     "2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "ER-Ada Lovelace-1756739045000", reg.RegistrationID)
	assert.Equal(t, "No", reg.WantsMentor)

	grid, err := m.ReadTable(context.Background(), entity.Registrations.Table)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{
		"ER-Ada Lovelace-1756739045000", "2025-09-01T15:04:05.000Z", "Career Fair", "", "Ada Lovelace",
		"ada@tamu.edu", "CS", "2026", "", "No", "", "", "false", "Pending", "Registered", "false",
		"2025-09-01T15:04:05.000Z", "", "0",
	}, grid[1])
}

func TestListByEmail_CaseInsensitive(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Registrations.Table, sheet.Grid{
		header,
		row("R1", "Ada@TAMU.edu", "false", "Pending", ""),
		row("R2", "bob@tamu.edu", "false", "Pending", ""),
		row("R3", "ada@tamu.edu", "false", "Approved", ""),
	})

	got, err := newRepo(m).ListByEmail(context.Background(), ga, "ada@tamu.edu")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "R1", got[0].RegistrationID)
	assert.Equal(t, "R3", got[1].RegistrationID)
}

func TestListPendingReview(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Registrations.Table, sheet.Grid{
		header,
		row("R1", "a@tamu.edu", "TRUE", "", ""),
		row("R2", "b@tamu.edu", "false", "Pending", ""),
		row("R3", "c@tamu.edu", "false", "Approved", ""),
		row("R4", "d@tamu.edu", "false", "Pending", "TRUE"),
	})

	got, err := newRepo(m).ListPendingReview(context.Background(), ga)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.RegistrationID)
	}
	assert.Equal(t, []string{"R1", "R2"}, ids)
}

func TestSetReviewDecision_WritesOnlyTargetCell(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Registrations.Table, sheet.Grid{
		header,
		row("R0", "z@tamu.edu", "false", "Pending", ""),
		row("R1", "a@tamu.edu", "false", "Pending", ""),
	})
	before, _ := m.ReadTable(context.Background(), entity.Registrations.Table)

	require.NoError(t, newRepo(m).SetReviewDecision(context.Background(), ga, "R1", true))

	after, err := m.ReadTable(context.Background(), entity.Registrations.Table)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", after[2][19])
	after[2][19] = ""
	assert.Equal(t, before, after)
	assert.Equal(t, 1, m.CellWrites())
}

func TestSetReviewDecision_RejectWritesFalse(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Registrations.Table, sheet.Grid{header, row("R1", "a@tamu.edu", "false", "Pending", "")})

	require.NoError(t, newRepo(m).SetReviewDecision(context.Background(), ga, "R1", false))
	grid, _ := m.ReadTable(context.Background(), entity.Registrations.Table)
	assert.Equal(t, "FALSE", grid[1][19])
}

func TestSetReviewDecision_UnknownID(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Registrations.Table, sheet.Grid{header, row("R1", "a@tamu.edu", "false", "Pending", "")})

	err := newRepo(m).SetReviewDecision(context.Background(), ga, "R-123", true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, m.CellWrites())
}

func TestSetReviewDecision_FallsBackToReviewStatus(t *testing.T) {
	m := sheet.NewMemoryStore()
	m.Seed(entity.Registrations.Table, sheet.Grid{
		entity.Registrations.Columns,
		row("R1", "a@tamu.edu", "false", "Pending", "")[:19],
	})

	require.NoError(t, newRepo(m).SetReviewDecision(context.Background(), ga, "R1", true))
	grid, _ := m.ReadTable(context.Background(), entity.Registrations.Table)
	assert.Equal(t, "TRUE", grid[1][13])
}
