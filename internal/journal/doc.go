// Package journal keeps a local SQLite record of organizer runs.
//
// Every invocation opens one run row keyed by a UUID; each gallery a pass
// acts on adds a run_events row with its action (updated, skipped, failed).
// The CLI's history command reads it back. The database is an operator aid
// only: the host server stays the source of truth for gallery metadata.
package journal
