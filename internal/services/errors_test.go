package services_test

import (
	"errors"
	"strings"
	"testing"

	"galleryorganizer/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "galleries_tags", "update gallery", "gallery 7", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"galleries_tags", "update gallery", "gallery 7"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestFailureActionMapping(t *testing.T) {
	validationErr := services.Wrap(services.ErrValidation, "galleries_date", "extract", "no date", nil)
	if action := services.FailureAction(validationErr); action != services.ActionSkipped {
		t.Fatalf("expected skipped for validation error, got %s", action)
	}

	transientErr := services.Wrap(services.ErrTransient, "galleries_date", "update", "failed", errors.New("io"))
	if action := services.FailureAction(transientErr); action != services.ActionFailed {
		t.Fatalf("expected failed for transient error, got %s", action)
	}

	if action := services.FailureAction(nil); action != services.ActionUpdated {
		t.Fatalf("expected updated for nil error, got %s", action)
	}
}
