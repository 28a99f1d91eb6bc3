package repo

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

// RequestRepo provides data access for Mentorship_Requests.
type RequestRepo struct {
	store  sheet.Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewRequestRepo(store sheet.Store, logger *zap.SugaredLogger) *RequestRepo {
	return &RequestRepo{store: store, logger: logger, now: time.Now}
}

func (r *RequestRepo) List(ctx context.Context, actor identity.Actor) ([]entity.Request, error) {
	grid, err := r.store.ReadTable(ctx, entity.Requests.Table)
	if err != nil {
		return nil, apperrors.Repository("mentorship requests: list", err)
	}
	r.logger.Debugw("mentorship requests read", "actor", actor, "rows", len(grid))
	return entity.Requests.Decode(grid), nil
}

// ListByEmail returns the student's requests oldest first.
func (r *RequestRepo) ListByEmail(ctx context.Context, actor identity.Actor, email string) ([]entity.Request, error) {
	all, err := r.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Request, 0)
	for _, req := range all {
		if strings.EqualFold(req.StudentEmail, email) {
			out = append(out, req)
		}
	}
	return out, nil
}

// GetLatestByEmail returns the student's most recent request, or ErrNotFound.
func (r *RequestRepo) GetLatestByEmail(ctx context.Context, actor identity.Actor, email string) (*entity.Request, error) {
	reqs, err := r.ListByEmail(ctx, actor, email)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	latest := reqs[len(reqs)-1]
	return &latest, nil
}

// Create appends a request with status New. The request_id is derived from
// the email alone, so a re-request after a decline repeats the id.
func (r *RequestRepo) Create(ctx context.Context, actor identity.Actor, in entity.NewRequest) (*entity.Request, error) {
	req := entity.Request{
		RequestID:        "MR-" + in.StudentEmail,
		StudentEmail:     in.StudentEmail,
		InterestIndustry: in.InterestIndustry,
		CareerGoal:       in.CareerGoal,
		SkillsToDevelop:  in.SkillsToDevelop,
		TargetCompanies:  in.TargetCompanies,
		Status:           entity.StatusNew,
		CreatedAt:        sheet.Timestamp(r.now()),
	}
	if err := r.store.AppendRows(ctx, entity.Requests.Table, sheet.Grid{entity.Requests.Encode(req)}); err != nil {
		return nil, apperrors.Repository("mentorship requests: create", err)
	}
	r.logger.Infow("mentorship request created", "actor", actor, "request_id", req.RequestID)
	return &req, nil
}
