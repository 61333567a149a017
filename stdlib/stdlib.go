// Package stdlib embeds builtins.nfu, the NumFu-native layer of the
// standard library (map, filter, reduce, …) that sits on top of
// internal/builtins' host natives (spec.md §4.2).
package stdlib

import _ "embed"

//go:embed builtins.nfu
var Source string
