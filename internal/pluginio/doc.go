// Package pluginio speaks the host's plugin invocation contract: one JSON
// document on standard input describing the server connection and arguments,
// and one JSON document on standard output reporting the result.
package pluginio
