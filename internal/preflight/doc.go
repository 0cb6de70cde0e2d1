// Package preflight provides readiness checks for the Stash server and the
// local directories galleryorganizer writes to.
//
// The CLI "check-env" command renders RunAll next to the external tool
// statuses from package deps. Each check reports a Result instead of failing,
// so one broken dependency never hides the others.
package preflight
