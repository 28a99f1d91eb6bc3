package registration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
)

func TestHandler_RegisterAndList(t *testing.T) {
	svc, _ := newService(newMemory(), nil)
	h := NewHandler(svc, zap.NewNop().Sugar())

	body := `{"event_name":"Career Fair","student_name":"Ada","student_email":"ada@tamu.edu","major_program":"CS","grad_year":"2026"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data Outcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Contains(t, created.Data.RegistrationID, "ER-Ada-")
	assert.Equal(t, "No", created.Data.Registration.WantsMentor)

	req := httptest.NewRequest(http.MethodGet, "/api/registrations", nil)
	req = req.WithContext(session.WithActor(req.Context(), ada))
	rec = httptest.NewRecorder()
	h.List(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Data []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
}

func TestHandler_RegisterMissingField(t *testing.T) {
	svc, _ := newService(newMemory(), nil)
	h := NewHandler(svc, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"event_name":"Career Fair"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required field: student_name")
}
