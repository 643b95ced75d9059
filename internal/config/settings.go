package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/handiism/conception-songs/internal/billboard"
	"github.com/handiism/conception-songs/internal/http"
	"github.com/handiism/conception-songs/internal/report"
)

// ErrInvalidSetting is wrapped by every Validate failure.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings holds all configuration options.
type Settings struct {
	// API settings
	Endpoint       string        `json:"endpoint"`
	ChartID        int           `json:"chart_id"`
	APIKey         string        `json:"-"`
	PageSize       int           `json:"page_size"`
	CallsPerSecond float64       `json:"calls_per_second"`
	Timeout        time.Duration `json:"timeout"`
	UserAgent      string        `json:"user_agent"`

	// Output settings
	Number *int   `json:"number"` // nil = all
	Format string `json:"format"` // json, text, table
	Output string `json:"output"` // empty = stdout

	// Logging settings
	Verbose   bool   `json:"verbose"`
	LogFormat string `json:"log_format"` // text, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Endpoint:       billboard.DefaultEndpoint,
		ChartID:        billboard.HotSinglesChartID,
		PageSize:       billboard.DefaultPageSize,
		CallsPerSecond: 2,
		Timeout:        http.DefaultTimeout,
		UserAgent:      http.DefaultUserAgent,

		Format: report.FormatText.String(),

		LogFormat: "text",
	}
}

// BindFlags registers a flag for every option on fs, using the current
// field values as defaults.
//
// Example:
//
//	settings := config.DefaultSettings()
//	fs := pflag.NewFlagSet("conception-songs", pflag.ContinueOnError)
//	settings.BindFlags(fs)
//	_ = fs.Parse(os.Args[1:])
func (s *Settings) BindFlags(fs *pflag.FlagSet) {
	fs.VarP(limitValue{&s.Number}, "number", "n", "number of songs to return (default all)")
	fs.StringVarP(&s.Format, "format", "f", s.Format, "output format: json, text or table")
	fs.StringVarP(&s.Output, "output", "o", s.Output, "write output to this file instead of stdout")

	fs.StringVar(&s.Endpoint, "endpoint", s.Endpoint, "chart list API endpoint")
	fs.IntVar(&s.ChartID, "chart-id", s.ChartID, "chart identifier (379 = Hot 100 singles)")
	fs.IntVar(&s.PageSize, "page-size", s.PageSize, "chart items requested per API call")
	fs.Float64Var(&s.CallsPerSecond, "rate", s.CallsPerSecond, "maximum API calls per second (0 = unlimited)")
	fs.DurationVar(&s.Timeout, "timeout", s.Timeout, "timeout for a single API request")

	fs.BoolVarP(&s.Verbose, "verbose", "v", s.Verbose, "show verbose output")
	fs.StringVar(&s.LogFormat, "log-format", s.LogFormat, "log output format: text or json")
}

// Validate reports the first setting that cannot be used.
func (s *Settings) Validate() error {
	switch {
	case s.Number != nil && *s.Number < 0:
		return fmt.Errorf("%w: --number must not be negative, got %d", ErrInvalidSetting, *s.Number)
	case s.ChartID <= 0:
		return fmt.Errorf("%w: --chart-id must be positive, got %d", ErrInvalidSetting, s.ChartID)
	case s.PageSize <= 0:
		return fmt.Errorf("%w: --page-size must be positive, got %d", ErrInvalidSetting, s.PageSize)
	case s.CallsPerSecond < 0:
		return fmt.Errorf("%w: --rate must not be negative, got %v", ErrInvalidSetting, s.CallsPerSecond)
	case s.Timeout < 0:
		return fmt.Errorf("%w: --timeout must not be negative, got %v", ErrInvalidSetting, s.Timeout)
	case s.Endpoint == "":
		return fmt.Errorf("%w: --endpoint must not be empty", ErrInvalidSetting)
	case s.LogFormat != "text" && s.LogFormat != "json":
		return fmt.Errorf("%w: --log-format must be 'text' or 'json', got %q", ErrInvalidSetting, s.LogFormat)
	}

	if _, err := report.ParseFormat(s.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return nil
}

// Limit returns the requested number of songs, or -1 when no limit was
// requested.
func (s *Settings) Limit() int {
	if s.Number == nil {
		return -1
	}
	return *s.Number
}

// limitValue is a pflag.Value for an optional int. The target stays nil
// until the flag is given, so an explicit 0 differs from no flag at all.
type limitValue struct {
	target **int
}

func (v limitValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return strconv.Itoa(**v.target)
}

func (v limitValue) Set(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%q is not an integer", raw)
	}
	*v.target = &n
	return nil
}

func (v limitValue) Type() string {
	return "int"
}

// ToFetcherConfig converts settings to billboard.Config.
func (s *Settings) ToFetcherConfig() billboard.Config {
	return billboard.Config{
		Endpoint: s.Endpoint,
		ChartID:  s.ChartID,
		APIKey:   s.APIKey,
		PageSize: s.PageSize,
	}
}

// ReportFormat returns the parsed output format. Call Validate first;
// an unknown format falls back to text.
func (s *Settings) ReportFormat() report.Format {
	f, err := report.ParseFormat(s.Format)
	if err != nil {
		return report.FormatText
	}
	return f
}
