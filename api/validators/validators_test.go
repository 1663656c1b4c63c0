package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
)

type payload struct {
	Name string `json:"name" validate:"required"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/team", strings.NewReader(`{"name":"a","extra":1}`))
	var dest payload
	err := DecodeJSONBody(req, &dest)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest("POST", "/team", strings.NewReader(`{}`))
	var dest payload
	err := DecodeJSONBody(req, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if details := typed.Details().(map[string]string); details["name"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDecodeJSONBodyEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/team", strings.NewReader(""))
	var dest payload
	if err := DecodeJSONBody(req, &dest); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRequireQuery(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/assignments?templateId=t1&memberId=+", nil)
	_, err := RequireQuery(req, "templateId", "memberId")
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected error")
	}
	details := typed.Details().(map[string]string)
	if _, ok := details["memberId"]; !ok || len(details) != 1 {
		t.Fatalf("unexpected details %v", details)
	}

	req = httptest.NewRequest("DELETE", "/assignments?templateId=t1&memberId=m1", nil)
	values, err := RequireQuery(req, "templateId", "memberId")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if values["templateId"] != "t1" || values["memberId"] != "m1" {
		t.Fatalf("unexpected values %v", values)
	}
}
