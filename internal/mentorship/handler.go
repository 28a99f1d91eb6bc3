package mentorship

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/entity"
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

// CreateRequest request body for a mentorship request.
type CreateRequest struct {
	StudentEmail     string `json:"student_email"`
	InterestIndustry string `json:"interest_industry"`
	CareerGoal       string `json:"career_goal"`
	SkillsToDevelop  string `json:"skills_to_develop"`
	TargetCompanies  string `json:"target_companies"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	out, err := h.svc.Request(r.Context(), session.ActorFrom(r.Context()), entity.NewRequest(req))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.Created(w, out)
}

// Status serves the mentorship page: latest request, matched mentor, industries.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	actor := session.ActorFrom(r.Context())
	out, err := h.svc.Status(r.Context(), actor, emailParam(r, actor.Email))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.OK(w, out)
}

// Latest returns the latest request alone; data is null when there is none.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	actor := session.ActorFrom(r.Context())
	req, err := h.svc.Latest(r.Context(), actor, emailParam(r, actor.Email))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.OK(w, req)
}

func emailParam(r *http.Request, fallback string) string {
	if e := r.URL.Query().Get("email"); e != "" {
		return e
	}
	return fallback
}
