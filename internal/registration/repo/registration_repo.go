package repo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

// RegistrationRepo provides data access for Event_Registrations.
type RegistrationRepo struct {
	store  sheet.Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewRegistrationRepo(store sheet.Store, logger *zap.SugaredLogger) *RegistrationRepo {
	return &RegistrationRepo{store: store, logger: logger, now: time.Now}
}

// List returns every registration in sheet order.
func (r *RegistrationRepo) List(ctx context.Context, actor identity.Actor) ([]entity.Registration, error) {
	grid, err := r.store.ReadTable(ctx, entity.Registrations.Table)
	if err != nil {
		return nil, apperrors.Repository("registrations: list", err)
	}
	r.logger.Debugw("registrations read", "actor", actor, "rows", len(grid))
	return entity.Registrations.Decode(grid), nil
}

// ListByEmail returns the registrations whose student_email matches case-insensitively.
func (r *RegistrationRepo) ListByEmail(ctx context.Context, actor identity.Actor, email string) ([]entity.Registration, error) {
	all, err := r.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Registration, 0)
	for _, reg := range all {
		if strings.EqualFold(reg.StudentEmail, email) {
			out = append(out, reg)
		}
	}
	return out, nil
}

// ListPendingReview returns registrations still awaiting a GA decision.
func (r *RegistrationRepo) ListPendingReview(ctx context.Context, actor identity.Actor) ([]entity.Registration, error) {
	all, err := r.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Registration, 0)
	for _, reg := range all {
		if reg.PendingReview() {
			out = append(out, reg)
		}
	}
	return out, nil
}

// Create appends a registration with the initial workflow columns set.
func (r *RegistrationRepo) Create(ctx context.Context, actor identity.Actor, in entity.NewRegistration) (*entity.Registration, error) {
	now := r.now()
	ts := sheet.Timestamp(now)
	wantsMentor := in.WantsMentor
	if wantsMentor == "" {
		wantsMentor = "No"
	}
	reg := entity.Registration{
		RegistrationID:    "ER-" + in.StudentName + "-" + strconv.FormatInt(now.UnixMilli(), 10),
		TimeStamp:         ts,
		EventName:         in.EventName,
		EventID:           in.EventID,
		StudentName:       in.StudentName,
		StudentEmail:      in.StudentEmail,
		MajorProgram:      in.MajorProgram,
		GradYear:          in.GradYear,
		Interests:         in.Interests,
		WantsMentor:       wantsMentor,
		MentorPreferences: in.MentorPreferences,
		NeedsReview:       "false",
		ReviewStatus:      entity.ReviewPending,
		Status:            entity.StatusRegistered,
		EmailSent:         "false",
		Processed:         ts,
		RiskScore:         "0",
	}
	row := entity.Registrations.Encode(reg)
	if err := r.store.AppendRows(ctx, entity.Registrations.Table, sheet.Grid{row}); err != nil {
		return nil, apperrors.Repository("registrations: create", err)
	}
	r.logger.Infow("registration created", "actor", actor, "registration_id", reg.RegistrationID, "event", reg.EventName)
	return &reg, nil
}

// SetReviewDecision writes "TRUE" or "FALSE" into the decision cell of the
// registration. It costs one full-table read plus one cell write and holds no
// lock between them: concurrent decisions on one row are last-writer-wins.
func (r *RegistrationRepo) SetReviewDecision(ctx context.Context, actor identity.Actor, registrationID string, approved bool) error {
	value := "FALSE"
	if approved {
		value = "TRUE"
	}
	cell, err := sheet.UpdateCellByKey(ctx, r.store, entity.Registrations.Table,
		"registration_id", registrationID, value, entity.DecisionColumns...)
	if err != nil {
		return apperrors.Repository("registrations: review decision", err)
	}
	r.logger.Infow("review decision written", "actor", actor, "registration_id", registrationID, "range", cell.Range, "value", value)
	return nil
}
