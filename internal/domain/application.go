package domain

import "time"

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle"`
	Company     string    `json:"company"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	ResumeURL   string    `json:"resumeUrl,omitempty"`
	FromScreen  string    `json:"fromScreen,omitempty"` // JobFinder / SavedJobs
	SubmittedAt time.Time `json:"submittedAt"`
}
