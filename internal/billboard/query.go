package billboard

import (
	"net/url"
	"strconv"

	"github.com/handiism/conception-songs/internal/model"
)

const (
	// DefaultEndpoint is the chart list endpoint of the Billboard API.
	DefaultEndpoint = "http://api.billboard.com/apisvc/chart/v1/list"

	// HotSinglesChartID identifies The Billboard Hot 100 - Singles.
	HotSinglesChartID = 379

	// DefaultPageSize is the number of chart items requested per page.
	DefaultPageSize = 50

	redacted = "REDACTED"
)

// Query holds the parameters of one chart list request.
type Query struct {
	ChartID int
	APIKey  string
	Window  model.Window

	// Start is the 1-based position of the first item to return.
	Start int

	// Count is the page size.
	Count int
}

// Values encodes the query as URL parameters.
//
// The API only returns JSON when format=json is present (and the request
// advertises gzip support, see internal/http).
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("format", "json")
	v.Set("id", strconv.Itoa(q.ChartID))
	v.Set("api_key", q.APIKey)
	v.Set("sdate", q.Window.Start.Format(model.DateLayout))
	v.Set("edate", q.Window.End.Format(model.DateLayout))
	v.Set("start", strconv.Itoa(q.Start))
	v.Set("count", strconv.Itoa(q.Count))
	return v
}

// BuildURL appends the query to endpoint. Parameters already present on
// endpoint are kept unless the query overrides them.
func BuildURL(endpoint string, q Query) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}

	params := u.Query()
	for key, values := range q.Values() {
		params[key] = values
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// RedactURL hides the api_key parameter of raw so URLs can be logged or
// shown in errors. Unparseable input is returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	params := u.Query()
	if params.Get("api_key") == "" {
		return raw
	}
	params.Set("api_key", redacted)
	u.RawQuery = params.Encode()
	return u.String()
}
