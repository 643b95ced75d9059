package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/handiism/conception-songs/internal/model"
)

// MissingDistribution is printed in place of an absent distribution label.
const MissingDistribution = "n/a"

// Format represents supported output formats.
//
// Each format targets a different consumer:
//   - Text: plain lines, easy to read and to grep
//   - JSON: a single object for scripts
//   - Table: a bordered table for the terminal
type Format int

const (
	// FormatText prints a header and one line per song.
	FormatText Format = iota

	// FormatJSON prints one JSON object with both dates and the song list.
	FormatJSON

	// FormatTable prints the header and a bordered table of songs.
	FormatTable
)

// String returns the flag value that selects the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTable:
		return "table"
	default:
		return "text"
	}
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q (want json, text or table)", s)
	}
}

// Renderer turns a model.Report into printable output.
//
// Example:
//
//	renderer := NewRenderer(FormatText)
//	out, err := renderer.Render(report)
//	fmt.Print(out)
//
//	// Result:
//	// Conception date: 1989-03-27
//	// Conception songs:
//	// 1. "Like a Prayer" by Madonna (Sire)
type Renderer struct {
	format Format
}

// NewRenderer creates a new Renderer for the given format.
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

// Render formats the report. The result always ends with a newline.
func (r *Renderer) Render(rep *model.Report) (string, error) {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(rep)
	case FormatTable:
		return r.renderTable(rep), nil
	default:
		return r.renderText(rep), nil
	}
}

// jsonReport is the JSON output document.
type jsonReport struct {
	BirthDate       string             `json:"birthDate"`
	ConceptionDate  string             `json:"conceptionDate"`
	ConceptionSongs []model.ChartEntry `json:"conceptionSongs"`
}

// renderJSON generates the JSON document:
//
//	{"birthDate":"1990-01-01","conceptionDate":"1989-03-27",
//	 "conceptionSongs":[[1,"Song","Artist","Label"],[2,"Song","Artist",null]]}
func (r *Renderer) renderJSON(rep *model.Report) (string, error) {
	songs := rep.Songs
	if songs == nil {
		songs = []model.ChartEntry{}
	}

	data, err := json.Marshal(jsonReport{
		BirthDate:       rep.BirthDate.Format(model.DateLayout),
		ConceptionDate:  rep.ConceptionDate.Format(model.DateLayout),
		ConceptionSongs: songs,
	})
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// renderText generates the plain text listing:
//
//	Conception date: 1989-03-27
//	Conception songs:
//	1. "Song" by Artist (Label)
func (r *Renderer) renderText(rep *model.Report) string {
	var sb strings.Builder

	sb.WriteString(header(rep))
	for _, song := range rep.Songs {
		sb.WriteString(fmt.Sprintf("%d. \"%s\" by %s (%s)\n",
			song.Rank, song.Title, song.Artist, song.DistributionOr(MissingDistribution)))
	}

	return sb.String()
}

// renderTable generates the header followed by a bordered table.
func (r *Renderer) renderTable(rep *model.Report) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Rank", "Song", "Artist", "Distribution").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	for _, song := range rep.Songs {
		t.Row(strconv.Itoa(song.Rank), song.Title, song.Artist, song.DistributionOr(MissingDistribution))
	}

	return header(rep) + t.String() + "\n"
}

func header(rep *model.Report) string {
	return fmt.Sprintf("Conception date: %s\nConception songs:\n", rep.ConceptionDate.Format(model.DateLayout))
}
