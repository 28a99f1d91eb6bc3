package notifier

// RegistrationPayload mirrors the intake form the registration workflow was
// built against, so its keys are the form's question labels.
type RegistrationPayload struct {
	Timestamp         string `json:"Timestamp"`
	EventName         string `json:"Which event are you registering for?"`
	StudentName       string `json:"Full Name"`
	StudentEmail      string `json:"TAMU Email"`
	MajorProgram      string `json:"Program / Major"`
	GradYear          string `json:"Graduation Year"`
	Interests         string `json:"What are your main career interests?"`
	WantsMentor       string `json:"Would you like to be considered for a mentor match?"`
	MentorPreferences string `json:"If yes, what kind of mentor would you like?"`
}

type MentorshipPayload struct {
	StudentEmail     string `json:"student_email"`
	InterestIndustry string `json:"interest_industry"`
	CareerGoal       string `json:"career_goal"`
	SkillsToDevelop  string `json:"skills_to_develop"`
	TargetCompanies  string `json:"target_companies"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}
