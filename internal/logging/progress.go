package logging

import (
	"io"
	"log/slog"
	"sync"
)

// Progress receives per-item completion updates from a pass.
type Progress interface {
	Report(pass string, done, total int)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(pass string, done, total int)

func (f ProgressFunc) Report(pass string, done, total int) { f(pass, done, total) }

// NopProgress discards updates.
var NopProgress Progress = ProgressFunc(func(string, int, int) {})

type pluginProgress struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPluginProgress reports fractions to the host task queue through w.
func NewPluginProgress(w io.Writer) Progress {
	return &pluginProgress{w: w}
}

func (p *pluginProgress) Report(_ string, done, total int) {
	if total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = WritePluginProgress(p.w, float64(done)/float64(total))
}

type sampledProgress struct {
	mu      sync.Mutex
	logger  *slog.Logger
	sampler *ProgressSampler
}

// NewLogProgress logs progress through logger, emitting once per bucketSize
// percent of the pass.
func NewLogProgress(logger *slog.Logger, bucketSize float64) Progress {
	if logger == nil {
		logger = NewNop()
	}
	return &sampledProgress{logger: logger, sampler: NewProgressSampler(bucketSize)}
}

func (p *sampledProgress) Report(pass string, done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.sampler.ShouldLog(pass, done, total) {
		return
	}
	p.logger.Info("progress",
		String(FieldPass, pass),
		Int("done", done),
		Int("total", total),
	)
}
