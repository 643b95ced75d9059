// Package ioutils provides file system utilities for conception-songs.
//
// This package contains functions for:
//   - Writing rendered output to a file (--output)
//   - Directory creation
package ioutils
