package preflight

import (
	"context"
	"path/filepath"

	"galleryorganizer/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config. The
// server check is skipped when server is nil.
func RunAll(ctx context.Context, cfg *config.Config, server VersionReader) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))

	if cfg.Journal.Enabled {
		results = append(results, CheckDirectoryAccess("Journal directory", filepath.Dir(cfg.Journal.Path)))
	}

	if server != nil {
		results = append(results, CheckStash(ctx, server))
	}

	return results
}

// Failed returns the names of the checks that did not pass.
func Failed(results []Result) []string {
	var names []string
	for _, result := range results {
		if !result.Passed {
			names = append(names, result.Name)
		}
	}
	return names
}
