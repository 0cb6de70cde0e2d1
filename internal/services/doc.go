// Package services defines shared utilities consumed by the organizer passes
// and the host API client.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, pass names, and gallery IDs
//     for logging and journaling.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent journal actions (skipped vs failed).
//
// Use these helpers when wiring new pass logic so operational behaviour (error
// handling, observability) stays uniform across the organizer.
package services
