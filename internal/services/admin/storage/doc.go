// Package storage defines persistence contracts for console-local state:
// admin sessions and UI preferences. Platform data never lands here; it is
// always fetched from the platform API.
package storage
