// Package cli implements the conception-songs command line: flag parsing
// with pflag, exit-code mapping via ExitError, slog setup, and the wiring
// of settings, HTTP client, lookup manager and renderer.
//
// Exit codes:
//   - 0: success (or --help)
//   - 1: fetch, render or output errors
//   - 2: usage errors, including invalid or out-of-range dates
//   - 130: interrupted
package cli
