// Package search provides the lookup orchestration logic for
// conception-songs.
//
// # Manager
//
// The Manager coordinates the whole pipeline:
//
//  1. Validate the birth date against today's date
//  2. Compute the conception date and search window
//  3. Page through the chart API, respecting the rate limit
//  4. Sort entries by rank and truncate to the requested count
//
// # Basic Usage
//
//	manager := search.NewManager(settings, http.NewClient(0, ""), clock.Real(), func(event search.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	report, err := manager.Run(ctx, "1990-01-01")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message    string
//	    Level      ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Page       int
//	    TotalPages int
//	}
//
// Lookups are sequential and are not retried; the first error is returned.
package search
