// Package http provides an HTTP client configured for the chart API.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Accept-Encoding: gzip negotiation and decompression
//   - Timeout handling
//   - Mapping non-2xx responses to *StatusError
//
// # Basic Usage
//
//	client := http.NewClient(0, "")
//	body, err := client.Get(ctx, "http://api.billboard.com/apisvc/chart/v1/list?...")
//	if err != nil {
//	    var statusErr *http.StatusError
//	    if errors.As(err, &statusErr) {
//	        fmt.Println("server said", statusErr.Code)
//	    }
//	}
package http
