package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	passKey      contextKey = "pass"
	galleryIDKey contextKey = "gallery_id"
)

// WithRunID annotates context with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPass annotates context with the maintenance pass name.
func WithPass(ctx context.Context, pass string) context.Context {
	if pass == "" {
		return ctx
	}
	return context.WithValue(ctx, passKey, pass)
}

// PassFromContext returns the pass name if present.
func PassFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(passKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithGalleryID annotates context with the gallery being processed.
func WithGalleryID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, galleryIDKey, id)
}

// GalleryIDFromContext returns the gallery identifier if present.
func GalleryIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(galleryIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
