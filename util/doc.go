// Package util provides small shared helpers: human-readable size
// parsing and text cleanup.
package util
