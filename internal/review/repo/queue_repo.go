package repo

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/review/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

// QueueRepo reads GA_Review_Queue.
type QueueRepo struct {
	store  sheet.Store
	logger *zap.SugaredLogger
}

func NewQueueRepo(store sheet.Store, logger *zap.SugaredLogger) *QueueRepo {
	return &QueueRepo{store: store, logger: logger}
}

// List returns the queue rows. A spreadsheet without the queue tab yields an
// empty queue, since the tab is created by the workflow on first use.
func (r *QueueRepo) List(ctx context.Context, actor identity.Actor) ([]entity.QueueItem, error) {
	grid, err := r.store.ReadTable(ctx, entity.Queue.Table)
	if errors.Is(err, apperrors.ErrTableNotFound) {
		r.logger.Warnw("review queue table missing", "actor", actor, "table", entity.Queue.Table)
		return []entity.QueueItem{}, nil
	}
	if err != nil {
		return nil, apperrors.Repository("review queue: list", err)
	}
	return entity.Queue.Decode(grid), nil
}
