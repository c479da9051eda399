// Package storage writes the generated schedule files.
//
// Files are written through an afero filesystem so callers and tests can swap
// the OS filesystem for an in-memory one. Every write replaces the previous
// file as a whole; a half-written page is never left at the destination path.
package storage
