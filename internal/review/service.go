package review

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	regentity "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	regrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/review/entity"
	reviewrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/review/repo"
)

// Service backs the GA review page. Every operation requires a GA or Admin.
type Service struct {
	queue  *reviewrepo.QueueRepo
	regs   *regrepo.RegistrationRepo
	logger *zap.SugaredLogger
}

func NewService(queue *reviewrepo.QueueRepo, regs *regrepo.RegistrationRepo, logger *zap.SugaredLogger) *Service {
	return &Service{queue: queue, regs: regs, logger: logger}
}

// Queue combines the workflow's review queue with registrations pending review.
type Queue struct {
	ReviewQueue          []entity.QueueItem       `json:"reviewQueue"`
	PendingRegistrations []regentity.Registration `json:"pendingRegistrations"`
	TotalPending         int                      `json:"totalPending"`
}

func (s *Service) Queue(ctx context.Context, actor identity.Actor) (*Queue, error) {
	if err := actor.RequireReviewer(); err != nil {
		return nil, err
	}
	items, err := s.queue.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	pending, err := s.regs.ListPendingReview(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &Queue{
		ReviewQueue:          items,
		PendingRegistrations: pending,
		TotalPending:         len(items) + len(pending),
	}, nil
}

// Decide records an approve or reject decision on a registration.
func (s *Service) Decide(ctx context.Context, actor identity.Actor, registrationID string, approved bool) error {
	if err := actor.RequireReviewer(); err != nil {
		return err
	}
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return apperrors.NewValidationError("Missing required fields")
	}
	return s.regs.SetReviewDecision(ctx, actor, registrationID, approved)
}
