package enums

import "fmt"

// TemplateStatus captures the release state of a project template.
type TemplateStatus string

const (
	TemplateStatusStable   TemplateStatus = "stable"
	TemplateStatusBeta     TemplateStatus = "beta"
	TemplateStatusArchived TemplateStatus = "archived"
	TemplateStatusDeployed TemplateStatus = "deployed"
)

var validTemplateStatuses = []TemplateStatus{
	TemplateStatusStable,
	TemplateStatusBeta,
	TemplateStatusArchived,
	TemplateStatusDeployed,
}

func (t TemplateStatus) String() string {
	return string(t)
}

// IsValid reports whether the value matches a known TemplateStatus.
func (t TemplateStatus) IsValid() bool {
	for _, candidate := range validTemplateStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTemplateStatus converts raw input into a TemplateStatus.
func ParseTemplateStatus(value string) (TemplateStatus, error) {
	for _, candidate := range validTemplateStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid template status %q", value)
}
