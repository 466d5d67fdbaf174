// Package state holds the client-side mirror of the server's collections:
// one slice per entity with a list, a focused item, loading/error flags and a
// pagination descriptor. Mutations are applied to the in-memory list only
// after server confirmation.
package state

import (
	"errors"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"
)

// Pagination mirrors one paginated collection. TotalItems moves by exactly 1
// on confirmed create/delete, floored at 0, independent of the next reload.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// errMessage strips the client-side call wrapping so the slice carries the
// server's own message. Transport and other non-API errors pass through as-is.
func errMessage(err error) string {
	var apiErr *huntoza.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

var jobTypes = map[string]bool{
	"full-time":  true,
	"part-time":  true,
	"contract":   true,
	"internship": true,
	"remote":     true,
}

var sortOrders = map[string]bool{
	"latest": true,
	"oldest": true,
	"a-z":    true,
	"z-a":    true,
}

// sanitizeJobParams constrains filters to the allow-listed shape. Unknown
// values are dropped rather than forwarded; no new fields are fabricated.
func sanitizeJobParams(p huntoza.JobListParams) huntoza.JobListParams {
	if p.Status == "all" || !models.IsValidJobStatus(p.Status) {
		p.Status = ""
	}
	if p.JobType == "all" || !jobTypes[p.JobType] {
		p.JobType = ""
	}
	if !sortOrders[p.Sort] {
		p.Sort = ""
	}
	return p
}

func sanitizeTaskParams(p huntoza.TaskListParams) huntoza.TaskListParams {
	if p.Status == "all" || !models.IsValidTaskStatus(p.Status) {
		p.Status = ""
	}
	if p.Category == "all" || !models.IsValidTaskCategory(p.Category) {
		p.Category = ""
	}
	if !models.IsValidPriority(p.Priority) {
		p.Priority = ""
	}
	if !sortOrders[p.Sort] {
		p.Sort = ""
	}
	return p
}

func sanitizeContactParams(p huntoza.ContactListParams) huntoza.ContactListParams {
	if p.Relationship == "all" || !models.IsValidRelationship(p.Relationship) {
		p.Relationship = ""
	}
	if !sortOrders[p.Sort] {
		p.Sort = ""
	}
	return p
}
