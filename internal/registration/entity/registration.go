package entity

import (
	"strings"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

const (
	ReviewPending  = "Pending"
	ReviewApproved = "Approved"
	ReviewRejected = "Rejected"

	StatusRegistered = "Registered"
	StatusWaitlisted = "Waitlisted"
	StatusCancelled  = "Cancelled"
)

// Registration is one row of Event_Registrations.
//
// Approved is not part of the append order: the column is added to the sheet
// by the review workflow and is the only cell mutated after creation.
type Registration struct {
	RegistrationID    string `sheet:"registration_id" json:"registration_id"`
	TimeStamp         string `sheet:"time_stamp" json:"time_stamp"`
	EventName         string `sheet:"event_name" json:"event_name"`
	EventID           string `sheet:"event_id" json:"event_id"`
	StudentName       string `sheet:"student_name" json:"student_name"`
	StudentEmail      string `sheet:"student_email" json:"student_email"`
	MajorProgram      string `sheet:"major_program" json:"major_program"`
	GradYear          string `sheet:"grad_year" json:"grad_year"`
	Interests         string `sheet:"interests" json:"interests"`
	WantsMentor       string `sheet:"wants_mentor" json:"wants_mentor"`
	MentorPreferences string `sheet:"mentor_preferences" json:"mentor_preferences"`
	EntryNumber       string `sheet:"entry_number" json:"entry_number"`
	NeedsReview       string `sheet:"needs_review" json:"needs_review"`
	ReviewStatus      string `sheet:"review_status" json:"review_status"`
	Status            string `sheet:"status" json:"status"`
	EmailSent         string `sheet:"email_sent" json:"email_sent"`
	Processed         string `sheet:"processed" json:"processed"`
	ValidationFlags   string `sheet:"validation_flags" json:"validation_flags"`
	RiskScore         string `sheet:"risk_score" json:"risk_score"`
	Approved          string `sheet:"approved" json:"approved,omitempty"`
}

var Registrations = sheet.NewSchema[Registration]("Event_Registrations",
	"registration_id", "time_stamp", "event_name", "event_id", "student_name", "student_email",
	"major_program", "grad_year", "interests", "wants_mentor", "mentor_preferences", "entry_number",
	"needs_review", "review_status", "status", "email_sent", "processed", "validation_flags", "risk_score",
)

// Review decision cells, in the order the update path looks for them.
var DecisionColumns = []string{"approved", "review_status"}

// PendingReview reports whether a GA still has to decide this registration.
func (r Registration) PendingReview() bool {
	if r.Approved != "" {
		return false
	}
	return strings.EqualFold(r.NeedsReview, "true") || r.ReviewStatus == ReviewPending
}

// NewRegistration is the input for creating a registration.
type NewRegistration struct {
	EventName         string
	EventID           string
	StudentName       string
	StudentEmail      string
	MajorProgram      string
	GradYear          string
	Interests         string
	WantsMentor       string
	MentorPreferences string
}
