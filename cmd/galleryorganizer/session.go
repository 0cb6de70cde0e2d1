package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"galleryorganizer/internal/config"
	"galleryorganizer/internal/deps"
	"galleryorganizer/internal/journal"
	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/organizer"
	"galleryorganizer/internal/runlock"
	"galleryorganizer/internal/services"
	"galleryorganizer/internal/stash"
)

// errReported marks failures already delivered to the caller (for example in
// the plugin output document) so main does not print them again.
var errReported = errors.New("error reported")

// session holds everything a run needs. It is built once before dispatch.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *stash.Client
	journal  *journal.Store
	lock     *runlock.Lock
	progress logging.Progress
	source   string
}

// newStashClient builds the GraphQL client from the [stash] settings plus any
// connection-specific options.
func newStashClient(cfg *config.Config, endpoint string, opts ...stash.Option) (*stash.Client, error) {
	base := []stash.Option{
		stash.WithTimeout(time.Duration(cfg.Stash.TimeoutSeconds) * time.Second),
		stash.WithRateLimit(cfg.Stash.RequestsPerSecond),
		stash.WithPageSize(cfg.Stash.PageSize),
	}
	return stash.New(endpoint, append(base, opts...)...)
}

// openSession takes the run lock, opens the journal, and checks the
// environment when configured to. Callers must close the session.
func openSession(cfg *config.Config, logger *slog.Logger, client *stash.Client, progress logging.Progress, source string) (*session, error) {
	s := &session{cfg: cfg, logger: logger, client: client, progress: progress, source: source}
	if s.progress == nil {
		s.progress = logging.NopProgress
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return nil, err
	}
	s.lock = lock

	if cfg.Journal.Enabled {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			_ = lock.Release()
			return nil, fmt.Errorf("open journal: %w", err)
		}
		s.journal = store
	}

	if cfg.Environment.CheckOnStart {
		statuses, err := deps.Ensure(runtime.GOOS)
		for _, status := range statuses {
			logger.Debug("dependency status",
				logging.String("name", status.Name),
				logging.String("command", status.Command),
				logging.Bool("available", status.Available),
			)
		}
		if err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close releases the journal and the run lock.
func (s *session) Close() {
	if s == nil {
		return
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.logger.Warn("close journal", logging.Error(err))
		}
	}
	if err := s.lock.Release(); err != nil {
		s.logger.Warn("release run lock", logging.Error(err))
	}
}

// pluginSettings reads the plugin's host-side settings, defaulting when the
// server does not answer.
func (s *session) pluginSettings(ctx context.Context) config.PluginSettings {
	plugins, err := s.client.PluginConfiguration(ctx)
	if err != nil {
		logging.WarnWithContext(s.logger, "plugin settings unavailable", "plugin_settings_unavailable",
			logging.Error(err),
			logging.String(logging.FieldImpact, "defaults are used"),
		)
		return config.PluginSettingsFrom(nil)
	}
	return config.PluginSettingsFrom(plugins)
}

// execute runs one mode and journals it. An unknown mode is passed through so
// the organizer can log it; nothing is queried for it.
func (s *session) execute(ctx context.Context, mode string) (*organizer.Summary, error) {
	if _, ok := organizer.ParseMode(mode); ok {
		s.logger.Info("plugin settings", logging.String("settings", s.pluginSettings(ctx).String()))
	}

	var run *journal.Run
	if s.journal != nil {
		var err error
		run, err = s.journal.BeginRun(ctx, mode, s.source)
		if err != nil {
			s.logger.Warn("journal run not started", logging.Error(err))
		} else {
			ctx = services.WithRunID(ctx, run.ID())
		}
	}

	opts := []organizer.Option{
		organizer.WithLogger(logging.WithContext(ctx, s.logger)),
		organizer.WithProgress(s.progress),
	}
	if run != nil {
		opts = append(opts, organizer.WithRecorder(run))
	}
	org, err := organizer.New(s.client, s.cfg.Rules, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, mode, "build organizer", "Invalid naming rules", err)
	}

	summary, runErr := org.Run(ctx, mode)
	if run != nil {
		counts := journal.Counts{}
		if summary != nil {
			counts = journal.Counts{
				Matched: summary.Matched,
				Updated: summary.Updated,
				Skipped: summary.Skipped,
				Failed:  summary.Failed(),
			}
		}
		// Finish with a fresh context so a cancelled run is still stamped.
		if err := run.Finish(context.WithoutCancel(ctx), counts, runErr); err != nil {
			s.logger.Warn("journal run not finished", logging.Error(err))
		}
	}
	return summary, runErr
}

// resultMessage is the one-line outcome reported to the host or terminal.
func resultMessage(mode string, summary *organizer.Summary) string {
	if summary == nil {
		return fmt.Sprintf("no action for mode %q", mode)
	}
	return summary.String()
}
