// Package config provides configuration loading and validation for the
// stimulus analyzer. It handles YAML-based configuration with per-section
// validation and applies defaults for every unset parameter.
package config
