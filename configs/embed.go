// Package configs provides the embedded configuration template for
// henkaiki.
//
// The template is embedded at build time so 'henkaiki config init' can
// write it regardless of how the binary was installed. Values in the
// template match the hardcoded defaults in internal/config.
package configs

import _ "embed"

// ConfigTemplate is the annotated example configuration written by
// 'henkaiki config init'.
//
//go:embed config.example.yaml
var ConfigTemplate string
