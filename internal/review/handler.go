package review

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
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

func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.Queue(r.Context(), session.ActorFrom(r.Context()))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.OK(w, q)
}

// DecideRequest approve payload; approved must be present.
type DecideRequest struct {
	RegistrationID string `json:"registration_id"`
	Approved       *bool  `json:"approved"`
}

type decideResponse struct {
	RegistrationID string `json:"registration_id"`
	Approved       bool   `json:"approved"`
	Message        string `json:"message"`
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	if req.Approved == nil {
		respond.Error(w, h.logger, apperrors.NewValidationError("Missing required fields"))
		return
	}
	err := h.svc.Decide(r.Context(), session.ActorFrom(r.Context()), req.RegistrationID, *req.Approved)
	if errors.Is(err, apperrors.ErrNotFound) {
		respond.Error(w, h.logger, apperrors.NewNotFoundError("Registration not found"))
		return
	}
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	verb := "rejected"
	if *req.Approved {
		verb = "approved"
	}
	respond.OK(w, decideResponse{
		RegistrationID: req.RegistrationID,
		Approved:       *req.Approved,
		Message:        "Registration " + verb + " successfully",
	})
}
