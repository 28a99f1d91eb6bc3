package mentorship

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/entity"
	mentorrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/notifier"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifier.Kind
	last  any
	res   notifier.Result
}

func (n *recordingNotifier) Notify(_ context.Context, kind notifier.Kind, payload any) notifier.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, kind)
	n.last = payload
	return n.res
}

var ada = identity.Actor{UserID: "USER-1", Email: "ada@tamu.edu", Role: identity.RoleStudent}

func newService(t *testing.T, requests sheet.Grid) (*Service, *sheet.MemoryStore, *recordingNotifier) {
	t.Helper()
	m := sheet.NewMemoryStore()
	m.Seed(entity.Requests.Table, append(sheet.Grid{entity.Requests.Columns}, requests...))
	m.Seed(entity.Mentors.Table, sheet.Grid{
		entity.Mentors.Columns,
		{"M1", "Grace", "grace@example.com", "Tech", "Navy", "Admiral", "3", "1"},
		{"M2", "Linus", "linus@example.com", "Energy", "", "", "2", "0"},
	})
	lg := zap.NewNop().Sugar()
	n := &recordingNotifier{res: notifier.Result{Success: true}}
	svc := NewService(mentorrepo.NewRequestRepo(m, lg), mentorrepo.NewMentorRepo(m, lg), n, lg)
	return svc, m, n
}

func requestRow(email, status, mentor string) []string {
	return []string{"MR-" + email, "", email, "Tech", "", "", "", mentor, status}
}

func TestRequest_CreatesAndNotifies(t *testing.T) {
	svc, m, n := newService(t, nil)
	out, err := svc.Request(context.Background(), ada, entity.NewRequest{
		StudentEmail: "ada@tamu.edu", InterestIndustry: "Tech", CareerGoal: "SWE",
	})
	require.NoError(t, err)
	assert.Equal(t, "MR-ada@tamu.edu", out.RequestID)
	assert.True(t, out.N8NTriggered)
	assert.Equal(t, []notifier.Kind{notifier.KindMentorship}, n.calls)
	assert.Equal(t, "New", n.last.(notifier.MentorshipPayload).Status)

	grid, _ := m.ReadTable(context.Background(), entity.Requests.Table)
	assert.Len(t, grid, 2)
}

func TestRequest_DuplicateActive(t *testing.T) {
	svc, m, n := newService(t, sheet.Grid{requestRow("ada@tamu.edu", "Matched", "M1")})
	_, err := svc.Request(context.Background(), ada, entity.NewRequest{StudentEmail: "ADA@tamu.edu", InterestIndustry: "Tech"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateActiveRequest)
	assert.Empty(t, n.calls)
	grid, _ := m.ReadTable(context.Background(), entity.Requests.Table)
	assert.Len(t, grid, 2)
}

func TestRequest_AfterDeclineAppendsSecondRow(t *testing.T) {
	svc, m, _ := newService(t, sheet.Grid{requestRow("ada@tamu.edu", "Declined", "")})
	_, err := svc.Request(context.Background(), ada, entity.NewRequest{StudentEmail: "ada@tamu.edu", InterestIndustry: "Energy"})
	require.NoError(t, err)

	grid, _ := m.ReadTable(context.Background(), entity.Requests.Table)
	require.Len(t, grid, 3)
	assert.Equal(t, grid[1][0], grid[2][0])

	st, err := svc.Status(context.Background(), ada, "ada@tamu.edu")
	require.NoError(t, err)
	assert.Equal(t, "Energy", st.Request.InterestIndustry)
}

func TestRequest_NotifierFailureIsNotFatal(t *testing.T) {
	svc, _, n := newService(t, nil)
	n.res = notifier.Result{Success: false, Reason: notifier.ReasonNotConfigured}
	out, err := svc.Request(context.Background(), ada, entity.NewRequest{StudentEmail: "ada@tamu.edu", InterestIndustry: "Tech"})
	require.NoError(t, err)
	assert.False(t, out.N8NTriggered)
}

func TestRequest_ValidationAndAuthz(t *testing.T) {
	svc, _, _ := newService(t, nil)
	_, err := svc.Request(context.Background(), ada, entity.NewRequest{StudentEmail: "ada@tamu.edu"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Request(context.Background(), ada, entity.NewRequest{StudentEmail: "bob@tamu.edu", InterestIndustry: "Tech"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Request(context.Background(), identity.Anonymous, entity.NewRequest{StudentEmail: "bob@tamu.edu", InterestIndustry: "Tech"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestStatus_MatchedMentorAndIndustries(t *testing.T) {
	svc, _, _ := newService(t, sheet.Grid{requestRow("ada@tamu.edu", "Matched", "M1")})
	st, err := svc.Status(context.Background(), ada, "ada@tamu.edu")
	require.NoError(t, err)
	require.NotNil(t, st.MatchedMentor)
	assert.Equal(t, "Grace", st.MatchedMentor.MentorName)
	assert.Equal(t, []string{"Tech", "Energy"}, st.AvailableIndustries)
}

func TestStatus_NoRequest(t *testing.T) {
	svc, _, _ := newService(t, nil)
	st, err := svc.Status(context.Background(), ada, "ada@tamu.edu")
	require.NoError(t, err)
	assert.Nil(t, st.Request)
	assert.Nil(t, st.MatchedMentor)
	assert.Len(t, st.AvailableIndustries, 2)
}
