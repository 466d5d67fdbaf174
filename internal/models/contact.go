package models

import "time"

type Relationship string

const (
	RelationshipRecruiter     Relationship = "recruiter"
	RelationshipHiringManager Relationship = "hiring-manager"
	RelationshipColleague     Relationship = "colleague"
	RelationshipReferral      Relationship = "referral"
	RelationshipMentor        Relationship = "mentor"
	RelationshipOther         Relationship = "other"
)

// Interaction is one entry in a contact's ordered interaction log.
type Interaction struct {
	ID    string    `json:"_id"`
	Date  time.Time `json:"date"`
	Type  string    `json:"interactionType"` // email, call, meeting, message
	Notes string    `json:"notes"`
}

type Contact struct {
	ID           string        `json:"_id"`
	Name         string        `json:"name"`
	Relationship Relationship  `json:"relationship"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Company      string        `json:"company,omitempty"`
	Position     string        `json:"position,omitempty"`
	LinkedIn     string        `json:"linkedIn,omitempty"`
	Tags         []string      `json:"tags"`
	FollowUpDate time.Time     `json:"followUpDate,omitempty"`
	Favorite     bool          `json:"favorite"`
	Interactions []Interaction `json:"interactions"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// AddTag appends a tag preserving order and suppressing case-sensitive
// duplicates.
func AddTag(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

func Relationships() []Relationship {
	return []Relationship{
		RelationshipRecruiter,
		RelationshipHiringManager,
		RelationshipColleague,
		RelationshipReferral,
		RelationshipMentor,
		RelationshipOther,
	}
}

func IsValidRelationship(s string) bool {
	for _, r := range Relationships() {
		if string(r) == s {
			return true
		}
	}
	return false
}
