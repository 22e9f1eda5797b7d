// Package content embeds the built-in encounter tables.
package content

import "embed"

// FS holds one .lua file per encounter category at its root.
//
//go:embed *.lua
var FS embed.FS
