// Package organizer runs the gallery maintenance passes.
//
// Each pass selects galleries through a server-side filter, infers the
// missing fields from the gallery's naming conventions (see package
// inference), and patches them back one gallery at a time. A failing
// gallery is recorded in the pass Summary and the run journal; it never
// aborts the remaining batch. Passes that read titles run the title pass
// quietly first.
//
// Run-scoped caches (TagCache, UnresolvedTags, PerformerCache) are created
// per pass invocation and never shared between passes.
package organizer
