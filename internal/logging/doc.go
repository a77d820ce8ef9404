// Package logging builds the slog loggers used by the stickerlayers CLI and
// defines the structured field keys shared across packages.
package logging
