// Package config loads, normalizes, and validates srtwrap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SRTWRAP_MAX_WIDTH. The Config type centralizes the wrapping options, output
// behaviour, and state/log locations so the CLI resolves everything in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
