// Package templates embeds the page templates.
package templates

import "embed"

//go:embed base.html pages/*.html
var FS embed.FS
