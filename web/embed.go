// Package web holds the static assets served next to the API.
package web

import "embed"

// StaticFS contains the placeholder artwork and other static assets.
//
//go:embed static
var StaticFS embed.FS
