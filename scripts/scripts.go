// Package scripts embeds the bundled Risor scripts.
package scripts

import "embed"

// FS holds demo.risor and the modules it imports.
//
//go:embed *.risor
var FS embed.FS
