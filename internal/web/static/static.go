// Package static embeds the browser shim served under /static/.
package static

import "embed"

//go:embed live.js
var FS embed.FS
