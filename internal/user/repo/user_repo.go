package repo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/user/entity"
)

// UserRepo provides data access for the Users table.
type UserRepo struct {
	store  sheet.Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewUserRepo(store sheet.Store, logger *zap.SugaredLogger) *UserRepo {
	return &UserRepo{store: store, logger: logger, now: time.Now}
}

// GetByEmail returns the first user whose email matches case-insensitively,
// or ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, actor identity.Actor, email string) (*entity.User, error) {
	grid, err := r.store.ReadTable(ctx, entity.Users.Table)
	if err != nil {
		return nil, apperrors.Repository("users: get by email", err)
	}
	r.logger.Debugw("users read", "actor", actor, "rows", len(grid))
	for _, u := range entity.Users.Decode(grid) {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Create appends a user row. The email is stored as entered.
func (r *UserRepo) Create(ctx context.Context, actor identity.Actor, in entity.NewUser) (*entity.User, error) {
	now := r.now()
	u := entity.User{
		UserID:       "USER-" + strconv.FormatInt(now.UnixMilli(), 10),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Name:         in.Name,
		MajorProgram: in.MajorProgram,
		GradYear:     in.GradYear,
		Role:         in.Role,
		CreatedAt:    sheet.Timestamp(now),
	}
	if err := r.store.AppendRows(ctx, entity.Users.Table, sheet.Grid{entity.Users.Encode(u)}); err != nil {
		return nil, apperrors.Repository("users: create", err)
	}
	r.logger.Infow("user created", "actor", actor, "user_id", u.UserID)
	return &u, nil
}
