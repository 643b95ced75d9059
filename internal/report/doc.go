// Package report renders conception-songs results for output.
//
// # Formats
//
//	renderer := report.NewRenderer(report.FormatJSON)
//	out, err := renderer.Render(rep)
//	fmt.Print(out)
//
// Supported formats:
//   - text: header plus `1. "Title" by Artist (Label)` lines
//   - json: {"birthDate", "conceptionDate", "conceptionSongs": [[rank, song, artist, label|null]]}
//   - table: header plus a bordered lipgloss table
//
// A missing distribution label is rendered as null in JSON and as
// MissingDistribution elsewhere.
package report
