package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

// MentorRepo reads the Mentors reference table.
type MentorRepo struct {
	store  sheet.Store
	logger *zap.SugaredLogger
}

func NewMentorRepo(store sheet.Store, logger *zap.SugaredLogger) *MentorRepo {
	return &MentorRepo{store: store, logger: logger}
}

func (r *MentorRepo) List(ctx context.Context, actor identity.Actor) ([]entity.Mentor, error) {
	grid, err := r.store.ReadTable(ctx, entity.Mentors.Table)
	if err != nil {
		return nil, apperrors.Repository("mentors: list", err)
	}
	r.logger.Debugw("mentors read", "actor", actor, "rows", len(grid))
	return entity.Mentors.Decode(grid), nil
}

// FindByID looks id up in mentors; it returns nil when absent or id is empty.
func FindByID(mentors []entity.Mentor, id string) *entity.Mentor {
	if id == "" {
		return nil
	}
	for i := range mentors {
		if mentors[i].MentorID == id {
			return &mentors[i]
		}
	}
	return nil
}

// Industries returns the distinct non-empty industries in first-seen order.
func Industries(mentors []entity.Mentor) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, m := range mentors {
		if m.Industry == "" {
			continue
		}
		if _, ok := seen[m.Industry]; ok {
			continue
		}
		seen[m.Industry] = struct{}{}
		out = append(out, m.Industry)
	}
	return out
}
