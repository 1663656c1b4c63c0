package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/rs/zerolog"
)

func TestContextFieldsAreCarried(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithCollection(ctx, "team")
	logg.Info(ctx, "hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["request_id"] != "req-1" {
		t.Fatalf("expected request_id field, got %v", line["request_id"])
	}
	if line["collection"] != "team" {
		t.Fatalf("expected collection field, got %v", line["collection"])
	}
	if line["service"] != "test" {
		t.Fatalf("expected service field, got %v", line["service"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"garbage": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

type failedReplace struct{}

func (failedReplace) Error() string                    { return "replace team: eio" }
func (failedReplace) StoreOperation() (string, string) { return "replace", "team" }

func TestErrorCarriesCodeAndStoreOperation(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithAnchor(context.Background(), "member", "m-1")
	logg.Error(ctx, "reconcile failed", pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, failedReplace{}, "add link"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["error_code"] != "STORE_UNAVAILABLE" || line["retryable"] != true {
		t.Fatalf("expected typed error fields, got %v", line)
	}
	if line["store_op"] != "replace" || line["store_collection"] != "team" {
		t.Fatalf("expected store operation fields, got %v", line)
	}
	if line["anchor"] != "member" || line["anchor_id"] != "m-1" {
		t.Fatalf("expected anchor fields, got %v", line)
	}
}
