// Package shaders provides the embedded default shader sources.
package shaders

import "embed"

// Basic is the file name of the default quad shader within FS.
const Basic = "basic.shader"

// FS holds the combined "#shader" source files shipped with the binary.
//
//go:embed *.shader
var FS embed.FS
