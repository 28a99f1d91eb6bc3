package entity

import "github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"

const (
	StatusNew      = "New"
	StatusPending  = "Pending"
	StatusMatched  = "Matched"
	StatusDeclined = "Declined"
)

// Request is one row of Mentorship_Requests. Matching fields are written by
// the external workflow and are read-only here.
type Request struct {
	RequestID        string `sheet:"request_id" json:"request_id"`
	StudentID        string `sheet:"student_id" json:"student_id,omitempty"`
	StudentEmail     string `sheet:"student_email" json:"student_email"`
	InterestIndustry string `sheet:"interest_industry" json:"interest_industry"`
	CareerGoal       string `sheet:"career_goal" json:"career_goal"`
	SkillsToDevelop  string `sheet:"skills_to_develop" json:"skills_to_develop"`
	TargetCompanies  string `sheet:"target_companies" json:"target_companies"`
	MatchedMentorID  string `sheet:"matched_mentor_id" json:"matched_mentor_id"`
	Status           string `sheet:"status" json:"status"`
	CreatedAt        string `sheet:"created_at" json:"created_at"`
	EmailSentAt      string `sheet:"email_sent_at" json:"email_sent_at,omitempty"`
	SuggestedMentor  string `sheet:"suggested_mentor" json:"suggested_mentor"`
	MatchScore       string `sheet:"match_score" json:"match_score"`
}

var Requests = sheet.NewSchema[Request]("Mentorship_Requests",
	"request_id", "student_id", "student_email", "interest_industry", "career_goal", "skills_to_develop",
	"target_companies", "matched_mentor_id", "status", "created_at", "email_sent_at", "suggested_mentor",
	"match_score",
)

// Active reports whether the request blocks a new one for the same student.
func (r Request) Active() bool { return r.Status != StatusDeclined }

// NewRequest is the input for creating a mentorship request.
type NewRequest struct {
	StudentEmail     string
	InterestIndustry string
	CareerGoal       string
	SkillsToDevelop  string
	TargetCompanies  string
}

// Mentor is read-only reference data.
type Mentor struct {
	MentorID            string `sheet:"mentor_id" json:"mentor_id"`
	MentorName          string `sheet:"mentor_name" json:"mentor_name"`
	Email               string `sheet:"email" json:"email"`
	Industry            string `sheet:"industry" json:"industry"`
	Company             string `sheet:"company" json:"company"`
	Role                string `sheet:"role" json:"role"`
	Capacity            string `sheet:"capacity" json:"capacity"`
	CurrentMenteesCount string `sheet:"current_mentees_count" json:"current_mentees_count"`
}

var Mentors = sheet.NewSchema[Mentor]("Mentors",
	"mentor_id", "mentor_name", "email", "industry", "company", "role", "capacity", "current_mentees_count",
)
