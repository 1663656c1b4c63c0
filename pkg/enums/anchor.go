package enums

import (
	"fmt"
	"strings"
)

// Anchor names the side of the member/template relation being reconciled.
type Anchor string

const (
	AnchorTemplate Anchor = "template"
	AnchorMember   Anchor = "member"
)

func (a Anchor) String() string {
	return string(a)
}

// IsValid reports whether the value is a known anchor.
func (a Anchor) IsValid() bool {
	return a == AnchorTemplate || a == AnchorMember
}

// ParseAnchor accepts "template"/"member" case-insensitively.
func ParseAnchor(value string) (Anchor, error) {
	switch Anchor(strings.ToLower(strings.TrimSpace(value))) {
	case AnchorTemplate:
		return AnchorTemplate, nil
	case AnchorMember:
		return AnchorMember, nil
	}
	return "", fmt.Errorf("invalid anchor %q", value)
}
