package organizer

import (
	"context"
	"fmt"
	"log/slog"

	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/services"
	"galleryorganizer/internal/stash"
)

// passRun carries the per-invocation state shared by every pass.
type passRun struct {
	org     *Organizer
	mode    Mode
	quiet   bool
	logger  *slog.Logger
	summary *Summary
	total   int
}

func (o *Organizer) startPass(ctx context.Context, mode Mode, quiet bool) (context.Context, *passRun) {
	ctx = services.WithPass(ctx, string(mode))
	run := &passRun{
		org:     o,
		mode:    mode,
		quiet:   quiet,
		logger:  logging.WithContext(ctx, o.logger),
		summary: &Summary{Mode: mode},
	}
	if !quiet {
		run.logger.Info(fmt.Sprintf("Starting %s...", passName(mode)))
	}
	return ctx, run
}

func (r *passRun) complete() *Summary {
	if !r.quiet {
		r.logger.Info(fmt.Sprintf("Completed %s.", passName(r.mode)),
			logging.Int("matched", r.summary.Matched),
			logging.Int("updated", r.summary.Updated),
			logging.Int("skipped", r.summary.Skipped),
			logging.Int("failed", r.summary.Failed()),
		)
	}
	return r.summary
}

// find runs the pass query. A failed query stops the pass.
func (r *passRun) find(ctx context.Context, filter stash.GalleryFilter, fields, what string) ([]stash.Gallery, error) {
	galleries, err := r.org.store.FindGalleries(ctx, filter, fields)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, string(r.mode), "find galleries", "Gallery query failed; check the server URL and credentials", err)
	}
	r.total = len(galleries)
	r.summary.Matched = len(galleries)
	if !r.quiet {
		r.logger.Info(fmt.Sprintf("Found %d galleries %s", len(galleries), what))
	}
	return galleries, nil
}

func (r *passRun) step(done int) {
	if r.quiet {
		return
	}
	r.org.progress.Report(string(r.mode), done, r.total)
}

// galleryContext scopes ctx and the logger to one gallery.
func (r *passRun) galleryContext(ctx context.Context, id string) (context.Context, *slog.Logger) {
	ctx = services.WithGalleryID(ctx, id)
	return ctx, logging.WithContext(ctx, r.org.logger)
}

func (r *passRun) skip(operation, message string) error {
	return services.Wrap(services.ErrValidation, string(r.mode), operation, message, nil)
}

func (r *passRun) update(ctx context.Context, update stash.GalleryUpdate) error {
	if err := r.org.store.UpdateGallery(ctx, update); err != nil {
		return services.Wrap(services.ErrTransient, string(r.mode), "update gallery", "Gallery update failed", err)
	}
	return nil
}

// settle classifies the outcome for one gallery, counts it, and journals it.
func (r *passRun) settle(ctx context.Context, galleryID, detail string, err error) {
	logger := logging.WithContext(ctx, r.org.logger)
	action := services.FailureAction(err)
	switch action {
	case services.ActionUpdated:
		r.summary.Updated++
		logger.Debug("gallery updated", logging.String("detail", detail))
	case services.ActionSkipped:
		r.summary.Skipped++
		detail = err.Error()
		if r.quiet {
			logger.Debug("gallery skipped", logging.String("reason", detail))
		} else {
			logger.Info("gallery skipped", logging.String("reason", detail))
		}
	default:
		r.summary.Failures = append(r.summary.Failures, Failure{GalleryID: galleryID, Err: err})
		detail = err.Error()
		logging.WarnWithContext(logger, "gallery update failed", "gallery_update_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "rerun the pass once the server is reachable"),
			logging.String(logging.FieldImpact, "gallery left unchanged"),
		)
	}

	if r.org.recorder == nil {
		return
	}
	if rerr := r.org.recorder.RecordEvent(ctx, string(r.mode), galleryID, action, detail); rerr != nil {
		logger.Warn("journal event not recorded", logging.Error(rerr))
	}
}
