package leads

import "github.com/northbeam-studio/studio-admin/pkg/enums"

// Lead is an inbound client enquiry. It has no relation to team members or
// templates.
type Lead struct {
	ID          string           `json:"id"`
	ClientName  string           `json:"clientName"`
	ProjectType string           `json:"projectType"`
	Status      enums.LeadStatus `json:"status"`
	Date        string           `json:"date"`
	Email       string           `json:"email,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// CreateInput is the ingestion payload. No fields are defaulted.
type CreateInput struct {
	ClientName  string           `json:"clientName" validate:"required,max=200"`
	ProjectType string           `json:"projectType" validate:"max=120"`
	Status      enums.LeadStatus `json:"status" validate:"omitempty,oneof=New Contacted Qualified"`
	Date        string           `json:"date" validate:"max=64"`
	Email       string           `json:"email" validate:"omitempty,email"`
	Message     string           `json:"message" validate:"max=8000"`
}

// Patch holds the optional fields of a lead update. The admin flow only
// moves Status.
type Patch struct {
	Status      *enums.LeadStatus `json:"status,omitempty" validate:"omitempty,eq=|oneof=New Contacted Qualified"`
	ClientName  *string           `json:"clientName,omitempty" validate:"omitempty,min=1,max=200"`
	ProjectType *string           `json:"projectType,omitempty" validate:"omitempty,max=120"`
	Email       *string           `json:"email,omitempty" validate:"omitempty,eq=|email"`
	Message     *string           `json:"message,omitempty" validate:"omitempty,max=8000"`
	Date        *string           `json:"date,omitempty" validate:"omitempty,max=64"`
}

func (in CreateInput) toLead(id string) Lead {
	return Lead{
		ID:          id,
		ClientName:  in.ClientName,
		ProjectType: in.ProjectType,
		Status:      in.Status,
		Date:        in.Date,
		Email:       in.Email,
		Message:     in.Message,
	}
}

func (p Patch) apply(l *Lead) {
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.ClientName != nil {
		l.ClientName = *p.ClientName
	}
	if p.ProjectType != nil {
		l.ProjectType = *p.ProjectType
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Message != nil {
		l.Message = *p.Message
	}
	if p.Date != nil {
		l.Date = *p.Date
	}
}
