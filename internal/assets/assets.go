// Package assets embeds the fixed viewer bundle served over the plain
// request/response channel: the entry page, the viewer script, and an icon.
package assets

import "embed"

//go:embed index.html main.min.js favicon.ico
var FS embed.FS
