package review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	regentity "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	regrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/review/entity"
	reviewrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/review/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

var (
	ga      = identity.Actor{UserID: "USER-2", Email: "ga@tamu.edu", Role: identity.RoleGA}
	student = identity.Actor{UserID: "USER-1", Email: "ada@tamu.edu", Role: identity.RoleStudent}
)

func newService(withQueue bool) (*Service, *sheet.MemoryStore) {
	m := sheet.NewMemoryStore()
	header := append(append([]string{}, regentity.Registrations.Columns...), "approved")
	pending := make([]string, len(header))
	pending[0], pending[13] = "R1", "Pending"
	decided := make([]string, len(header))
	decided[0], decided[13] = "R2", "Approved"
	m.Seed(regentity.Registrations.Table, sheet.Grid{header, pending, decided})
	if withQueue {
		m.Seed(entity.Queue.Table, sheet.Grid{
			entity.Queue.Columns,
			{"mentorship", "MR-ada@tamu.edu", "ada@tamu.edu", "Tech", "no mentor", ""},
		})
	}
	lg := zap.NewNop().Sugar()
	return NewService(reviewrepo.NewQueueRepo(m, lg), regrepo.NewRegistrationRepo(m, lg), lg), m
}

func TestQueue(t *testing.T) {
	svc, _ := newService(true)
	q, err := svc.Queue(context.Background(), ga)
	require.NoError(t, err)
	assert.Len(t, q.ReviewQueue, 1)
	require.Len(t, q.PendingRegistrations, 1)
	assert.Equal(t, "R1", q.PendingRegistrations[0].RegistrationID)
	assert.Equal(t, 2, q.TotalPending)
}

func TestQueue_WithoutQueueTable(t *testing.T) {
	svc, _ := newService(false)
	q, err := svc.Queue(context.Background(), ga)
	require.NoError(t, err)
	assert.Empty(t, q.ReviewQueue)
	assert.Equal(t, 1, q.TotalPending)
}

func TestQueue_StudentForbidden(t *testing.T) {
	svc, _ := newService(true)
	_, err := svc.Queue(context.Background(), student)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDecide(t *testing.T) {
	svc, m := newService(false)
	require.NoError(t, svc.Decide(context.Background(), ga, "R1", true))

	q, err := svc.Queue(context.Background(), ga)
	require.NoError(t, err)
	assert.Empty(t, q.PendingRegistrations)

	grid, _ := m.ReadTable(context.Background(), regentity.Registrations.Table)
	assert.Equal(t, "TRUE", grid[1][19])
	assert.Equal(t, "", grid[2][19])
}

func TestDecide_UnknownAndForbidden(t *testing.T) {
	svc, m := newService(false)
	assert.ErrorIs(t, svc.Decide(context.Background(), ga, "R-123", true), apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.Decide(context.Background(), student, "R1", true), apperrors.ErrForbidden)
	assert.Zero(t, m.CellWrites())
}

func TestHandler_Decide(t *testing.T) {
	svc, _ := newService(false)
	h := NewHandler(svc, zap.NewNop().Sugar())
	post := func(body string, a identity.Actor) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/review-queue/approve", strings.NewReader(body))
		req = req.WithContext(session.WithActor(req.Context(), a))
		rec := httptest.NewRecorder()
		h.Decide(rec, req)
		return rec
	}

	rec := post(`{"registration_id":"R1","approved":false}`, ga)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration rejected successfully")

	assert.Equal(t, http.StatusBadRequest, post(`{"registration_id":"R1"}`, ga).Code)
	rec = post(`{"registration_id":"R-123","approved":true}`, ga)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration not found")
	assert.Equal(t, http.StatusForbidden, post(`{"registration_id":"R1","approved":true}`, student).Code)
	assert.Equal(t, http.StatusUnauthorized, post(`{"registration_id":"R1","approved":true}`, identity.Anonymous).Code)
}
