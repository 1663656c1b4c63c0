package templates

import (
	"github.com/northbeam-studio/studio-admin/pkg/enums"
)

const (
	DefaultVersion          = "1.0.0"
	DefaultPerformanceScore = 100
)

// Template is a reusable project blueprint that team members are linked to.
type Template struct {
	ID               string               `json:"id"`
	CodeName         string               `json:"codeName"`
	CoreModel        string               `json:"coreModel"`
	Category         string               `json:"category"`
	Status           enums.TemplateStatus `json:"status"`
	Version          string               `json:"version"`
	TechStack        []string             `json:"techStack"`
	PerformanceScore int                  `json:"performanceScore"`
	TemplateURL      string               `json:"templateUrl"`
	TemplatePhotos   []string             `json:"templatePhotos"`
}

// CreateInput is the partial template accepted on creation. ID may be set by
// the caller; it is generated when blank.
type CreateInput struct {
	ID               string               `json:"id" validate:"omitempty,max=128"`
	CodeName         string               `json:"codeName" validate:"required,max=120"`
	CoreModel        string               `json:"coreModel" validate:"max=2000"`
	Category         string               `json:"category" validate:"max=120"`
	Status           enums.TemplateStatus `json:"status" validate:"omitempty,oneof=stable beta archived deployed"`
	Version          string               `json:"version" validate:"omitempty,semver"`
	TechStack        []string             `json:"techStack" validate:"omitempty,dive,required,max=60"`
	PerformanceScore *int                 `json:"performanceScore" validate:"omitempty,min=0,max=100"`
	TemplateURL      string               `json:"templateUrl" validate:"omitempty,uri"`
	TemplatePhotos   []string             `json:"templatePhotos" validate:"omitempty,dive,uri"`
}

// Patch holds the optional fields of a template update. Fields create may
// leave empty accept "" so a stored record can be sent back as is, and so the
// value can be cleared.
type Patch struct {
	CodeName         *string               `json:"codeName,omitempty" validate:"omitempty,min=1,max=120"`
	CoreModel        *string               `json:"coreModel,omitempty" validate:"omitempty,max=2000"`
	Category         *string               `json:"category,omitempty" validate:"omitempty,max=120"`
	Status           *enums.TemplateStatus `json:"status,omitempty" validate:"omitempty,eq=|oneof=stable beta archived deployed"`
	Version          *string               `json:"version,omitempty" validate:"omitempty,semver"`
	TechStack        []string              `json:"techStack,omitempty" validate:"omitempty,dive,required,max=60"`
	PerformanceScore *int                  `json:"performanceScore,omitempty" validate:"omitempty,min=0,max=100"`
	TemplateURL      *string               `json:"templateUrl,omitempty" validate:"omitempty,eq=|uri"`
	TemplatePhotos   []string              `json:"templatePhotos,omitempty" validate:"omitempty,dive,uri"`
}

// UpdateInput is a patch for one template plus the optional member links to
// reconcile afterwards. A nil MemberIDs leaves links alone.
type UpdateInput struct {
	ID             string
	Patch          Patch
	MemberIDs      []string
	AssignmentRole string
}

func (in CreateInput) toTemplate(id string) Template {
	version := in.Version
	if version == "" {
		version = DefaultVersion
	}
	score := DefaultPerformanceScore
	if in.PerformanceScore != nil {
		score = *in.PerformanceScore
	}
	return Template{
		ID:               id,
		CodeName:         in.CodeName,
		CoreModel:        in.CoreModel,
		Category:         in.Category,
		Status:           in.Status,
		Version:          version,
		TechStack:        nonNil(in.TechStack),
		PerformanceScore: score,
		TemplateURL:      in.TemplateURL,
		TemplatePhotos:   nonNil(in.TemplatePhotos),
	}
}

func (p Patch) apply(t *Template) {
	if p.CodeName != nil {
		t.CodeName = *p.CodeName
	}
	if p.CoreModel != nil {
		t.CoreModel = *p.CoreModel
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Version != nil {
		t.Version = *p.Version
	}
	if p.TechStack != nil {
		t.TechStack = append([]string{}, p.TechStack...)
	}
	if p.PerformanceScore != nil {
		t.PerformanceScore = *p.PerformanceScore
	}
	if p.TemplateURL != nil {
		t.TemplateURL = *p.TemplateURL
	}
	if p.TemplatePhotos != nil {
		t.TemplatePhotos = append([]string{}, p.TemplatePhotos...)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
