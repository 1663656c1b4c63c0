package validation

import (
	"testing"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Score *int   `json:"performanceScore,omitempty" validate:"omitempty,min=0,max=100"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	over := 140
	err := Struct(&sample{Score: &over})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name detail %q", details["name"])
	}
	if details["performanceScore"] != "must be at most 100" {
		t.Fatalf("unexpected score detail %q", details["performanceScore"])
	}
}

func TestStructAcceptsValid(t *testing.T) {
	score := 80
	if err := Struct(&sample{Name: "ok", Score: &score}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type optionalFields struct {
	Status *string `json:"status,omitempty" validate:"omitempty,eq=|oneof=stable beta"`
	URL    *string `json:"templateUrl,omitempty" validate:"omitempty,eq=|uri"`
}

func TestOptionalFieldsAcceptEmptyString(t *testing.T) {
	empty := ""
	if err := Struct(&optionalFields{Status: &empty, URL: &empty}); err != nil {
		t.Fatalf("expected empty values to pass, got %v", err)
	}
}

func TestOptionalFieldsReportUnderlyingRule(t *testing.T) {
	status, url := "gone", "not a url"
	err := Struct(&optionalFields{Status: &status, URL: &url})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]string)
	if details["status"] != "must be one of [stable beta]" {
		t.Fatalf("unexpected status detail %q", details["status"])
	}
	if details["templateUrl"] != "must be a valid URL" {
		t.Fatalf("unexpected url detail %q", details["templateUrl"])
	}
}
