package models

import "time"

type JobStatus string

const (
	JobStatusApplied   JobStatus = "applied"
	JobStatusScreening JobStatus = "screening"
	JobStatusInterview JobStatus = "interview"
	JobStatusOffer     JobStatus = "offer"
	JobStatusRejected  JobStatus = "rejected"
	JobStatusWithdrawn JobStatus = "withdrawn"
	JobStatusSaved     JobStatus = "saved"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Interview is one entry in a job's ordered interview history.
type Interview struct {
	ID    string    `json:"_id"`
	Date  time.Time `json:"date"`
	Type  string    `json:"interviewType"` // phone, video, onsite, technical
	Notes string    `json:"notes"`
}

type JobApplication struct {
	ID               string      `json:"_id"`
	Company          string      `json:"company"`
	Position         string      `json:"position"`
	Status           JobStatus   `json:"status"`
	JobType          string      `json:"jobType"` // full-time, part-time, contract, internship, remote
	JobLocation      string      `json:"jobLocation"`
	Salary           SalaryRange `json:"salary"`
	ApplicationDate  time.Time   `json:"applicationDate"`
	Priority         Priority    `json:"priority"`
	Favorite         bool        `json:"favorite"`
	Notes            string      `json:"notes,omitempty"`
	JobURL           string      `json:"jobUrl,omitempty"`
	InterviewHistory []Interview `json:"interviewHistory"`
	ContactPerson    *string     `json:"contactPerson,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

func JobStatuses() []JobStatus {
	return []JobStatus{
		JobStatusApplied,
		JobStatusScreening,
		JobStatusInterview,
		JobStatusOffer,
		JobStatusRejected,
		JobStatusWithdrawn,
		JobStatusSaved,
	}
}

func IsValidJobStatus(s string) bool {
	for _, status := range JobStatuses() {
		if string(status) == s {
			return true
		}
	}
	return false
}

func IsValidPriority(s string) bool {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
