package enums

import "fmt"

// MemberStatus captures the availability of a team member.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusStandby   MemberStatus = "standby"
	MemberStatusDeploying MemberStatus = "deploying"
)

var validMemberStatuses = []MemberStatus{
	MemberStatusActive,
	MemberStatusStandby,
	MemberStatusDeploying,
}

// String implements fmt.Stringer.
func (m MemberStatus) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MemberStatus.
func (m MemberStatus) IsValid() bool {
	for _, candidate := range validMemberStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberStatus converts raw input into a MemberStatus.
func ParseMemberStatus(value string) (MemberStatus, error) {
	for _, candidate := range validMemberStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member status %q", value)
}
