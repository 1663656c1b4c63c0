package team

import (
	"github.com/northbeam-studio/studio-admin/pkg/enums"
)

// Member is a studio operator that can be linked to templates.
type Member struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Role         string             `json:"role"`
	Status       enums.MemberStatus `json:"status"`
	Specialty    string             `json:"specialty"`
	Rank         string             `json:"rank"`
	Bio          string             `json:"bio"`
	Avatar       string             `json:"avatar"`
	MemberPhotos []string           `json:"memberPhotos"`
}

// CreateInput is the partial member accepted on creation. An id sent by the
// caller is accepted and ignored; member ids are always generated.
type CreateInput struct {
	ID           string             `json:"id,omitempty" validate:"omitempty,max=128"`
	Name         string             `json:"name" validate:"required,max=120"`
	Role         string             `json:"role" validate:"max=120"`
	Status       enums.MemberStatus `json:"status" validate:"omitempty,oneof=active standby deploying"`
	Specialty    string             `json:"specialty" validate:"max=200"`
	Rank         string             `json:"rank" validate:"max=60"`
	Bio          string             `json:"bio" validate:"max=4000"`
	Avatar       string             `json:"avatar" validate:"omitempty,uri"`
	MemberPhotos []string           `json:"memberPhotos" validate:"omitempty,dive,uri"`
}

// Patch holds the optional fields of a member update. Nil fields are left
// untouched.
type Patch struct {
	Name         *string             `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Role         *string             `json:"role,omitempty" validate:"omitempty,max=120"`
	Status       *enums.MemberStatus `json:"status,omitempty" validate:"omitempty,oneof=active standby deploying"`
	Specialty    *string             `json:"specialty,omitempty" validate:"omitempty,max=200"`
	Rank         *string             `json:"rank,omitempty" validate:"omitempty,max=60"`
	Bio          *string             `json:"bio,omitempty" validate:"omitempty,max=4000"`
	Avatar       *string             `json:"avatar,omitempty" validate:"omitempty,eq=|uri"`
	MemberPhotos []string            `json:"memberPhotos,omitempty" validate:"omitempty,dive,uri"`
}

// UpdateInput is a patch for one member plus the optional template links to
// reconcile afterwards. A nil TemplateIDs leaves links alone; an empty one
// unlinks every template.
type UpdateInput struct {
	ID             string
	Patch          Patch
	TemplateIDs    []string
	AssignmentRole string
}

func (in CreateInput) toMember(id string) Member {
	status := in.Status
	if status == "" {
		status = enums.MemberStatusActive
	}
	photos := in.MemberPhotos
	if photos == nil {
		photos = []string{}
	}
	return Member{
		ID:           id,
		Name:         in.Name,
		Role:         in.Role,
		Status:       status,
		Specialty:    in.Specialty,
		Rank:         in.Rank,
		Bio:          in.Bio,
		Avatar:       in.Avatar,
		MemberPhotos: photos,
	}
}

func (p Patch) apply(m *Member) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Role != nil {
		m.Role = *p.Role
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Specialty != nil {
		m.Specialty = *p.Specialty
	}
	if p.Rank != nil {
		m.Rank = *p.Rank
	}
	if p.Bio != nil {
		m.Bio = *p.Bio
	}
	if p.Avatar != nil {
		m.Avatar = *p.Avatar
	}
	if p.MemberPhotos != nil {
		m.MemberPhotos = append([]string{}, p.MemberPhotos...)
	}
}
