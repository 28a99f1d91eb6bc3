package registration

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship"
	mentorentity "github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/notifier"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	regrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/repo"
)

// Notifier triggers the external workflows after each write.
type Notifier interface {
	Notify(ctx context.Context, kind notifier.Kind, payload any) notifier.Result
}

// MentorshipCreator appends mentorship requests.
type MentorshipCreator interface {
	Create(ctx context.Context, actor identity.Actor, in mentorentity.NewRequest) (*mentorentity.Request, error)
}

// EventResolver maps an event name to its id in the Events table.
type EventResolver interface {
	ResolveID(ctx context.Context, actor identity.Actor, name string) (string, error)
}

type Service struct {
	regs     *regrepo.RegistrationRepo
	events   EventResolver
	requests MentorshipCreator
	notify   Notifier
	logger   *zap.SugaredLogger
}

func NewService(regs *regrepo.RegistrationRepo, events EventResolver, requests MentorshipCreator, notify Notifier, logger *zap.SugaredLogger) *Service {
	return &Service{regs: regs, events: events, requests: requests, notify: notify, logger: logger}
}

// Outcome reports each step of Register separately. Steps after the
// registration append never undo it.
type Outcome struct {
	RegistrationID     string                `json:"registrationId"`
	Timestamp          string                `json:"timestamp"`
	Registration       *entity.Registration  `json:"registration"`
	RegistrationNotify notifier.Result       `json:"registrationNotification"`
	N8NTriggered       bool                  `json:"n8nTriggered"`
	MentorshipRequest  *mentorentity.Request `json:"mentorshipRequest,omitempty"`
	MentorshipNotify   *notifier.Result      `json:"mentorshipNotification,omitempty"`
	MentorshipError    string                `json:"mentorshipError,omitempty"`

	// MentorshipErr is the mentorship append failure, if any.
	MentorshipErr error `json:"-"`
}

// Register runs the registration saga:
//  1. append the registration row, with event_id looked up by name when omitted
//  2. notify the registration workflow
//  3. when the student wants a mentor and gave interests, append a mentorship request
//  4. notify the mentorship workflow for that request
//
// Only a failure of step 1 fails the call.
func (s *Service) Register(ctx context.Context, actor identity.Actor, in entity.NewRegistration) (*Outcome, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	// the public form may register anonymously; signed-in students only for themselves
	if actor.Authenticated() && !actor.CanActFor(in.StudentEmail) {
		return nil, apperrors.ErrForbidden
	}

	if strings.TrimSpace(in.EventID) == "" {
		id, err := s.events.ResolveID(ctx, actor, in.EventName)
		if err != nil {
			// the registration still lands under the placeholder id
			s.logger.Warnw("event id lookup failed", "actor", actor, "event", in.EventName, "err", err)
		}
		in.EventID = id
	}

	reg, err := s.regs.Create(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	out := &Outcome{RegistrationID: reg.RegistrationID, Timestamp: reg.TimeStamp, Registration: reg}

	out.RegistrationNotify = s.notify.Notify(ctx, notifier.KindRegistration, payload(reg))
	out.N8NTriggered = out.RegistrationNotify.Success

	if reg.WantsMentor != "Yes" || reg.Interests == "" {
		return out, nil
	}
	req, err := s.requests.Create(ctx, actor, mentorentity.NewRequest{
		StudentEmail:     reg.StudentEmail,
		InterestIndustry: reg.Interests,
		CareerGoal:       reg.MentorPreferences,
	})
	if err != nil {
		s.logger.Errorw("registration saved but mentorship request failed",
			"actor", actor, "registration_id", reg.RegistrationID, "err", err)
		out.MentorshipErr = err
		out.MentorshipError = "mentorship request could not be created"
		return out, nil
	}
	out.MentorshipRequest = req
	res := s.notify.Notify(ctx, notifier.KindMentorship, mentorship.Payload(req))
	out.MentorshipNotify = &res
	return out, nil
}

// ListForUser returns the registrations of email.
func (s *Service) ListForUser(ctx context.Context, actor identity.Actor, email string) ([]entity.Registration, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("Email parameter required")
	}
	if err := actor.RequireFor(email); err != nil {
		return nil, err
	}
	return s.regs.ListByEmail(ctx, actor, email)
}

func validate(in *entity.NewRegistration) error {
	in.StudentEmail = strings.TrimSpace(in.StudentEmail)
	required := []struct{ name, value string }{
		{"event_name", in.EventName},
		{"student_name", in.StudentName},
		{"student_email", in.StudentEmail},
		{"major_program", in.MajorProgram},
		{"grad_year", in.GradYear},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.NewValidationError("Missing required field: " + f.name)
		}
	}
	return nil
}

func payload(reg *entity.Registration) notifier.RegistrationPayload {
	return notifier.RegistrationPayload{
		Timestamp:         reg.TimeStamp,
		EventName:         reg.EventName,
		StudentName:       reg.StudentName,
		StudentEmail:      reg.StudentEmail,
		MajorProgram:      reg.MajorProgram,
		GradYear:          reg.GradYear,
		Interests:         reg.Interests,
		WantsMentor:       reg.WantsMentor,
		MentorPreferences: reg.MentorPreferences,
	}
}
