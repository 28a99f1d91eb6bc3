package mentorship

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/entity"
	mentorrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/notifier"
)

// Notifier triggers the external workflow for a new request.
type Notifier interface {
	Notify(ctx context.Context, kind notifier.Kind, payload any) notifier.Result
}

type Service struct {
	requests *mentorrepo.RequestRepo
	mentors  *mentorrepo.MentorRepo
	notify   Notifier
	logger   *zap.SugaredLogger
}

func NewService(requests *mentorrepo.RequestRepo, mentors *mentorrepo.MentorRepo, notify Notifier, logger *zap.SugaredLogger) *Service {
	return &Service{requests: requests, mentors: mentors, notify: notify, logger: logger}
}

// Created is the result of a mentorship request.
type Created struct {
	RequestID    string          `json:"requestId"`
	Timestamp    string          `json:"timestamp"`
	Request      *entity.Request `json:"request"`
	Notification notifier.Result `json:"notification"`
	N8NTriggered bool            `json:"n8nTriggered"`
}

// Request creates a mentorship request unless the student already has one
// that is not Declined, then notifies the matching workflow.
func (s *Service) Request(ctx context.Context, actor identity.Actor, in entity.NewRequest) (*Created, error) {
	in.StudentEmail = strings.TrimSpace(in.StudentEmail)
	if in.StudentEmail == "" || in.InterestIndustry == "" {
		return nil, apperrors.NewValidationError("Missing required fields: student_email, interest_industry")
	}
	if err := actor.RequireFor(in.StudentEmail); err != nil {
		return nil, err
	}

	existing, err := s.requests.ListByEmail(ctx, actor, in.StudentEmail)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.Active() {
			s.logger.Infow("mentorship request rejected, active request exists",
				"actor", actor, "request_id", r.RequestID, "status", r.Status)
			return nil, apperrors.ErrDuplicateActiveRequest
		}
	}

	req, err := s.requests.Create(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	res := s.notify.Notify(ctx, notifier.KindMentorship, Payload(req))
	return &Created{
		RequestID:    req.RequestID,
		Timestamp:    req.CreatedAt,
		Request:      req,
		Notification: res,
		N8NTriggered: res.Success,
	}, nil
}

// Status is a student's mentorship view.
type Status struct {
	Request             *entity.Request `json:"request"`
	MatchedMentor       *entity.Mentor  `json:"matchedMentor"`
	AvailableIndustries []string        `json:"availableIndustries"`
}

// Status returns the student's latest request, if any, with the matched
// mentor and the industries mentors are available in.
func (s *Service) Status(ctx context.Context, actor identity.Actor, email string) (*Status, error) {
	req, err := s.Latest(ctx, actor, email)
	if err != nil {
		return nil, err
	}
	mentors, err := s.mentors.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := &Status{Request: req, AvailableIndustries: mentorrepo.Industries(mentors)}
	if req != nil {
		out.MatchedMentor = mentorrepo.FindByID(mentors, req.MatchedMentorID)
	}
	return out, nil
}

// Latest returns the student's most recent request, or nil when none exists.
func (s *Service) Latest(ctx context.Context, actor identity.Actor, email string) (*entity.Request, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("Email parameter required")
	}
	if err := actor.RequireFor(email); err != nil {
		return nil, err
	}
	req, err := s.requests.GetLatestByEmail(ctx, actor, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

// Payload is the mentorship workflow trigger body for req.
func Payload(req *entity.Request) notifier.MentorshipPayload {
	return notifier.MentorshipPayload{
		StudentEmail:     req.StudentEmail,
		InterestIndustry: req.InterestIndustry,
		CareerGoal:       req.CareerGoal,
		SkillsToDevelop:  req.SkillsToDevelop,
		TargetCompanies:  req.TargetCompanies,
		Status:           req.Status,
		CreatedAt:        req.CreatedAt,
	}
}
