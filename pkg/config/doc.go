// Package config handles configuration management for heimweh.
// It layers embedded defaults, the user's config file, HEIMWEH_* environment
// variables and command-line flags into a Config, and parses the home.toml
// manifests castles use to declare further castles.
package config
