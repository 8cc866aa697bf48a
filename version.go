// Package jot identifies the module. The working code lives in the thing,
// ints, slurp and trace packages.
package jot

const (
	URL     = "jot.mleku.dev"
	Version = "v0.3.1"
)
