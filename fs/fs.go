// Package appfs exposes files compiled into the binary.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
