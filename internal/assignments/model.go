package assignments

import "time"

// DefaultRole is used when a link is created without an explicit role.
const DefaultRole = "Contributor"

// Assignment links one team member to one template. At most one assignment
// exists per (TemplateID, MemberID) pair.
type Assignment struct {
	ID                string    `json:"id"`
	TemplateID        string    `json:"templateId"`
	MemberID          string    `json:"memberId"`
	RoleInProject     string    `json:"roleInProject"`
	JoinedAt          time.Time `json:"joinedAt"`
	ContributionLevel int       `json:"contributionLevel"`
}

// CreateInput is the HTTP payload for linking a member to a template.
type CreateInput struct {
	TemplateID    string `json:"templateId" validate:"required"`
	MemberID      string `json:"memberId" validate:"required"`
	RoleInProject string `json:"roleInProject" validate:"max=120"`
}

// Filter narrows a listing to one template, one member, or both.
type Filter struct {
	TemplateID string
	MemberID   string
}

func (f Filter) matches(a Assignment) bool {
	if f.TemplateID != "" && a.TemplateID != f.TemplateID {
		return false
	}
	if f.MemberID != "" && a.MemberID != f.MemberID {
		return false
	}
	return true
}
