// Package config loads, normalizes, and validates galleryorganizer settings.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STASH_URL and STASH_API_KEY. The Config type centralizes every knob the
// plugin and CLI need: server connection, logging, the run journal, and the
// naming rules the inference passes apply to gallery titles.
//
// The package also interprets the plugin-scoped settings blob the host stores
// for this plugin (see PluginSettingsFrom). Always obtain settings through this
// package so downstream code receives sanitized paths and clear validation
// errors.
package config
