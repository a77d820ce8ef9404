// Package config loads the stickerlayers TOML configuration, applies
// defaults, validates it and turns it into pipeline options.
package config
