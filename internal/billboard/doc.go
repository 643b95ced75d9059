// Package billboard queries the Billboard chart list API.
//
// The package handles two concerns:
//
//  1. Building chart list request URLs for a date window (Query, BuildURL)
//  2. Paging through every result for that window (Fetcher)
//
// # Fetching a Window
//
//	fetcher := billboard.NewFetcher(client, billboard.Config{APIKey: key}, pacer)
//	result, err := fetcher.FetchWindow(ctx, window)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, entry := range result.Entries {
//	    fmt.Println(entry.Rank, entry.Title)
//	}
//
// # Wire Format
//
// Each page is a JSON object:
//
//	{"searchResults": {
//	    "firstPosition": 1,
//	    "totalRecords": 120,
//	    "chartItem": [{"rank": 1, "song": "...", "artist": "...", "distribution": "..."}]
//	}}
//
// The dto sub-package decodes it. distribution is optional; rank, song and
// artist are required and their absence fails the fetch.
package billboard
