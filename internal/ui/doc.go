// Package ui renders CLI output with lipgloss: a small colour palette for status lines and
// bordered tables for listings.
//
// Output written to a non-terminal is left uncoloured by lipgloss's own profile detection, so
// piping a command into a file yields plain text.
package ui
