// Package config provides layered application configuration.
//
// Configuration is resolved in three steps: built-in defaults, an optional
// YAML file (config.yaml or configs/config.yaml), then STEAMLENS_* environment
// variables, which take precedence. The loaded Config is validated and
// normalized before use.
package config
