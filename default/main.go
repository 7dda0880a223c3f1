// Package defaults provides the embedded default configuration.
package defaults

import _ "embed"

//go:embed picker.toml
var DefaultConfigTOML []byte
