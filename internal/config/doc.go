// Package config provides configuration management for conception-songs.
//
// This package handles:
//   - Default configuration values
//   - Binding every option to a command-line flag (pflag)
//   - Validation of user-supplied values
//   - Conversion to billboard.Config for the fetcher
//
// Command-line flags are the only configuration source.
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Hot 100 singles, 50 items per page, 2 calls per second, text output
//
// # Binding Flags
//
//	fs := pflag.NewFlagSet("conception-songs", pflag.ContinueOnError)
//	settings.BindFlags(fs)
//	if err := fs.Parse(args); err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
package config
