package organizer

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"galleryorganizer/internal/config"
	"galleryorganizer/internal/inference"
	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/stash"
)

// Store is the subset of the host API the passes use.
type Store interface {
	FindGalleries(ctx context.Context, filter stash.GalleryFilter, fields string) ([]stash.Gallery, error)
	UpdateGallery(ctx context.Context, update stash.GalleryUpdate) error
	FindTag(ctx context.Context, name string) (*stash.Tag, error)
	FindPerformers(ctx context.Context, query string) ([]stash.Performer, error)
}

// Recorder receives one event per gallery a pass acts on.
type Recorder interface {
	RecordEvent(ctx context.Context, pass, galleryID, action, detail string) error
}

// Organizer runs maintenance passes against a Store.
type Organizer struct {
	store    Store
	rules    config.Rules
	logger   *slog.Logger
	progress logging.Progress
	recorder Recorder

	exclusionPattern string
	platformPattern  string
	studioPattern    string
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithLogger sets the base logger; a component attribute is added.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Organizer) {
		if logger != nil {
			o.logger = logging.NewComponentLogger(logger, "organizer")
		}
	}
}

// WithProgress routes per-gallery progress to p.
func WithProgress(p logging.Progress) Option {
	return func(o *Organizer) {
		if p != nil {
			o.progress = p
		}
	}
}

// WithRecorder journals every gallery outcome through r.
func WithRecorder(r Recorder) Option {
	return func(o *Organizer) {
		o.recorder = r
	}
}

// New constructs an Organizer and rejects rules whose patterns do not compile.
func New(store Store, rules config.Rules, opts ...Option) (*Organizer, error) {
	if store == nil {
		return nil, errors.New("organizer requires a store")
	}
	o := &Organizer{
		store:    store,
		rules:    rules,
		logger:   logging.NewComponentLogger(nil, "organizer"),
		progress: logging.NopProgress,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.exclusionPattern = inference.ExclusionPattern(rules.ExcludedCategories)
	o.platformPattern = inference.PrefixPattern(rules.PlatformPrefix)
	if len(rules.StudioBrands) > 0 {
		o.studioPattern = inference.StudioPattern(rules.StudioBrands)
	}
	for _, pattern := range []string{o.exclusionPattern, o.platformPattern, o.studioPattern} {
		if pattern == "" {
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, err
		}
	}
	return o, nil
}
