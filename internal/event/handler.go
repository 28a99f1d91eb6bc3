package event

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/event/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/respond"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
)

// Lister lists events with registration counts.
type Lister interface {
	List(ctx context.Context, actor identity.Actor) ([]entity.Summary, error)
}

// Handler exposes the public event listing.
type Handler struct {
	events Lister
	logger *zap.SugaredLogger
}

func NewHandler(events Lister, logger *zap.SugaredLogger) *Handler {
	return &Handler{events: events, logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context(), session.ActorFrom(r.Context()))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.OK(w, events)
}
