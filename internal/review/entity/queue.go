package entity

import "github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"

// QueueItem is one row of GA_Review_Queue, filled by the workflow engine.
type QueueItem struct {
	Type             string `sheet:"type" json:"type"`
	RequestID        string `sheet:"request_id" json:"request_id"`
	StudentEmail     string `sheet:"student_email" json:"student_email"`
	InterestIndustry string `sheet:"interest_industry" json:"interest_industry"`
	Reason           string `sheet:"reason" json:"reason"`
	CreatedAt        string `sheet:"created_at" json:"created_at"`
}

var Queue = sheet.NewSchema[QueueItem]("GA_Review_Queue",
	"type", "request_id", "student_email", "interest_industry", "reason", "created_at",
)
