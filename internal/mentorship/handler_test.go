package mentorship

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

func as(r *http.Request, a identity.Actor) *http.Request {
	return r.WithContext(session.WithActor(r.Context(), a))
}

func TestHandler_CreateThenConflict(t *testing.T) {
	svc, _, _ := newService(t, nil)
	h := NewHandler(svc, zap.NewNop().Sugar())
	body := `{"student_email":"ada@tamu.edu","interest_industry":"Tech","career_goal":"SWE"}`

	rec := httptest.NewRecorder()
	h.Create(rec, as(httptest.NewRequest(http.MethodPost, "/api/mentorship", strings.NewReader(body)), ada))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, as(httptest.NewRequest(http.MethodPost, "/api/mentorship", strings.NewReader(body)), ada))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_LatestNullWhenAbsent(t *testing.T) {
	svc, _, _ := newService(t, nil)
	h := NewHandler(svc, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.Latest(rec, as(httptest.NewRequest(http.MethodGet, "/api/mentorship-status?email=ada@tamu.edu", nil), ada))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":null}`, rec.Body.String())
}

func TestHandler_StatusDefaultsToCallerEmail(t *testing.T) {
	svc, _, _ := newService(t, sheet.Grid{requestRow("ada@tamu.edu", "Matched", "M2")})
	h := NewHandler(svc, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.Status(rec, as(httptest.NewRequest(http.MethodGet, "/api/mentorship", nil), ada))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data Status `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Linus", body.Data.MatchedMentor.MentorName)
}

func TestHandler_StatusAnonymousWithoutEmail(t *testing.T) {
	svc, _, _ := newService(t, nil)
	h := NewHandler(svc, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/mentorship", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
