// Package config loads and validates quell server configuration from
// defaults, config files, environment variables and CLI flags, in that order
// of increasing precedence. Unrecognized configuration keys are a fatal load
// error.
package config
