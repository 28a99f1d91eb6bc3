package registration

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/respond"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRequest request body for event registration.
type RegisterRequest struct {
	EventName         string `json:"event_name"`
	EventID           string `json:"event_id"`
	StudentName       string `json:"student_name"`
	StudentEmail      string `json:"student_email"`
	MajorProgram      string `json:"major_program"`
	GradYear          string `json:"grad_year"`
	Interests         string `json:"interests"`
	WantsMentor       string `json:"wants_mentor"`
	MentorPreferences string `json:"mentor_preferences"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	out, err := h.svc.Register(r.Context(), session.ActorFrom(r.Context()), entity.NewRegistration(req))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.Created(w, out)
}

// List returns the registrations for ?email=, defaulting to the caller.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := session.ActorFrom(r.Context())
	email := r.URL.Query().Get("email")
	if email == "" {
		email = actor.Email
	}
	regs, err := h.svc.ListForUser(r.Context(), actor, email)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.OK(w, regs)
}
