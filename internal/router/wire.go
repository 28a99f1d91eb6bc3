package router

import (
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/event"
	eventrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/event/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship"
	mentorrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/notifier"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/registration"
	regrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/review"
	reviewrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/review/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/user/repo"
)

// Notifier is satisfied by *notifier.Notifier.
type Notifier interface {
	registration.Notifier
}

var _ Notifier = (*notifier.Notifier)(nil)

// NewHandlers builds repositories, services and handlers over one store.
func NewHandlers(store sheet.Store, notify Notifier, tokens user.TokenIssuer, hasher user.PasswordHasher, logger *zap.SugaredLogger) Handlers {
	users := userrepo.NewUserRepo(store, logger.Named("users"))
	events := eventrepo.NewEventRepo(store, logger.Named("events"))
	regs := regrepo.NewRegistrationRepo(store, logger.Named("registrations"))
	requests := mentorrepo.NewRequestRepo(store, logger.Named("mentorship"))
	mentors := mentorrepo.NewMentorRepo(store, logger.Named("mentors"))
	queue := reviewrepo.NewQueueRepo(store, logger.Named("review"))

	return Handlers{
		User:         user.NewHandler(user.NewService(users, hasher, logger), tokens, logger),
		Event:        event.NewHandler(events, logger),
		Registration: registration.NewHandler(registration.NewService(regs, events, requests, notify, logger), logger),
		Mentorship:   mentorship.NewHandler(mentorship.NewService(requests, mentors, notify, logger), logger),
		Review:       review.NewHandler(review.NewService(queue, regs, logger), logger),
	}
}
