// Package stash is a small GraphQL client for the host media server.
//
// It covers exactly the surface the organizer needs: filtered gallery
// searches (with optional pagination), partial gallery updates, tag and
// performer lookups by name, and the configuration queries that expose the
// plugin's settings and the library roots. Requests authenticate with either
// the API key or the session cookie the host passes to plugins, and can be
// paced with a client-side rate limit.
package stash
