package models

import "time"

type MonthlyCount struct {
	Month string `json:"month"` // "2026-01"
	Count int    `json:"count"`
}

// DashboardStats is the aggregated analytics view computed server-side.
type DashboardStats struct {
	TotalJobs          int                  `json:"totalJobs"`
	TotalTasks         int                  `json:"totalTasks"`
	TotalContacts      int                  `json:"totalContacts"`
	JobsByStatus       map[JobStatus]int    `json:"jobsByStatus"`
	TasksByStatus      map[TaskStatus]int   `json:"tasksByStatus"`
	MonthlyTrend       []MonthlyCount       `json:"monthlyTrend"`
	InterviewRate      float64              `json:"interviewRate"`
	OfferRate          float64              `json:"offerRate"`
	UpcomingInterviews []UpcomingInterview  `json:"upcomingInterviews"`
}

type UpcomingInterview struct {
	JobID    string    `json:"jobId"`
	Company  string    `json:"company"`
	Position string    `json:"position"`
	Date     time.Time `json:"date"`
	Type     string    `json:"interviewType"`
}
