package services

import (
	"context"
	"testing"
)

func TestContextHelpersRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithPass(ctx, "galleries_title")
	ctx = WithGalleryID(ctx, "42")

	if id, ok := RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id %q (ok=%v)", id, ok)
	}
	if pass, ok := PassFromContext(ctx); !ok || pass != "galleries_title" {
		t.Fatalf("unexpected pass %q (ok=%v)", pass, ok)
	}
	if id, ok := GalleryIDFromContext(ctx); !ok || id != "42" {
		t.Fatalf("unexpected gallery id %q (ok=%v)", id, ok)
	}
}

func TestContextHelpersIgnoreEmptyValues(t *testing.T) {
	base := context.Background()
	if ctx := WithPass(base, ""); ctx != base {
		t.Fatal("expected empty pass to leave context untouched")
	}
	if _, ok := RunIDFromContext(base); ok {
		t.Fatal("expected no run id on bare context")
	}
}
