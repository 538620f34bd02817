package config

import _ "embed"

// DefaultConfigYAML is the built-in configuration, overridden by external files and env vars.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
