// Package logging assembles structured slog loggers and formatting helpers used
// across galleryorganizer.
//
// It owns the console, JSON, and host plugin handlers, centralizes level and
// output plumbing, and exposes context-aware helpers so pass code can
// automatically tag log lines with run IDs, pass names, and gallery IDs. The
// plugin handler speaks the host's stderr log protocol (a control byte, a
// level letter, then the message), which is also how progress fractions reach
// the host task queue.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the plugin.
package logging
