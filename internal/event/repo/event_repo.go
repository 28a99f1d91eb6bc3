package repo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/event/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	regentity "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

// EventRepo lists events with registration counts derived from
// Event_Registrations on every read.
type EventRepo struct {
	store  sheet.Store
	logger *zap.SugaredLogger
}

func NewEventRepo(store sheet.Store, logger *zap.SugaredLogger) *EventRepo {
	return &EventRepo{store: store, logger: logger}
}

// List reads Events and Event_Registrations. When the Events table is missing
// or has no rows, events are inferred from the distinct event names found in
// registrations.
func (r *EventRepo) List(ctx context.Context, actor identity.Actor) ([]entity.Summary, error) {
	var events []entity.Event
	grid, err := r.store.ReadTable(ctx, entity.Events.Table)
	switch {
	case err == nil:
		events = entity.Events.Decode(grid)
	case errors.Is(err, apperrors.ErrTableNotFound):
		r.logger.Debugw("events table missing, deriving from registrations", "actor", actor)
	default:
		return nil, apperrors.Repository("events: list", err)
	}

	regGrid, err := r.store.ReadTable(ctx, regentity.Registrations.Table)
	if err != nil {
		return nil, apperrors.Repository("events: list registrations", err)
	}
	regs := regentity.Registrations.Decode(regGrid)

	if len(events) == 0 {
		return derive(regs), nil
	}

	counts := make(map[string]int, len(events))
	for _, reg := range regs {
		counts[effectiveID(reg.EventID, reg.EventName)]++
	}
	out := make([]entity.Summary, 0, len(events))
	for _, ev := range events {
		out = append(out, entity.Summary{
			EventID:         effectiveID(ev.EventID, ev.Name),
			EventName:       ev.Name,
			EventDate:       ev.DateTime,
			Description:     ev.Description,
			Capacity:        atoi(ev.Capacity),
			RegisteredCount: counts[effectiveID(ev.EventID, ev.Name)],
			Type:            ev.Type,
			Location:        ev.Location,
			TargetAudience:  ev.TargetAudience,
		})
	}
	return out, nil
}

// ResolveID returns the event_id of the Events row named name, compared
// case-insensitively. It returns "" when no row matches or the table is missing.
func (r *EventRepo) ResolveID(ctx context.Context, actor identity.Actor, name string) (string, error) {
	grid, err := r.store.ReadTable(ctx, entity.Events.Table)
	if errors.Is(err, apperrors.ErrTableNotFound) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.Repository("events: resolve id", err)
	}
	name = strings.TrimSpace(name)
	for _, ev := range entity.Events.Decode(grid) {
		if ev.EventID != "" && strings.EqualFold(strings.TrimSpace(ev.Name), name) {
			r.logger.Debugw("event id resolved", "actor", actor, "event", name, "event_id", ev.EventID)
			return ev.EventID, nil
		}
	}
	return "", nil
}

// derive groups registrations by event name in first-seen order.
func derive(regs []regentity.Registration) []entity.Summary {
	index := make(map[string]int)
	out := make([]entity.Summary, 0)
	for _, reg := range regs {
		if i, ok := index[reg.EventName]; ok {
			out[i].RegisteredCount++
			continue
		}
		index[reg.EventName] = len(out)
		out = append(out, entity.Summary{
			EventID:         effectiveID(reg.EventID, reg.EventName),
			EventName:       reg.EventName,
			EventDate:       entity.DerivedEventDate,
			Description:     reg.EventName + " event",
			Capacity:        entity.DerivedCapacity,
			RegisteredCount: 1,
		})
	}
	return out
}

func effectiveID(id, name string) string {
	if id != "" {
		return id
	}
	return entity.PlaceholderID(name)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
