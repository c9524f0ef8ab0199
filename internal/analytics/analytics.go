// Package analytics reshapes loosely structured analytics payloads into
// chart-ready records.
//
// Backend responses drift between versions: fields get renamed, lists move
// under nested objects and whole payloads arrive wrapped in an HTTP client
// envelope. Every extractor here resolves its input through a fixed list of
// candidate paths and field aliases, and degrades to an empty or zero-filled
// default instead of failing.
//
// The package is organized into focused files:
//   - resolve.go: path resolution and envelope unwrapping
//   - coerce.go: numeric, sequence and label coercion
//   - timeseries.go: visitors/clicks over time
//   - breakdowns.go: countries, browsers, operating systems, languages
//   - hourly.go: 24-bucket hour-of-day distribution
//   - visits.go: referral flow pass-through and the recent-visitor log
package analytics

// TimePoint is one reported interval of the time series.
type TimePoint struct {
	Date           string  `json:"date" yaml:"date"`
	Visitors       float64 `json:"visitors" yaml:"visitors"`
	Clicks         float64 `json:"clicks" yaml:"clicks"`
	UniqueVisitors float64 `json:"uniqueVisitors" yaml:"uniqueVisitors"`
}

// CountryStat is one row of the geographic breakdown.
// CountryCode is nil unless the source carried a two-letter code.
type CountryStat struct {
	Country     string  `json:"country" yaml:"country"`
	CountryCode *string `json:"countryCode" yaml:"countryCode"`
	Visitors    float64 `json:"visitors" yaml:"visitors"`
	Percentage  float64 `json:"percentage" yaml:"percentage"`
}

// BrowserStat is one row of the browser breakdown.
type BrowserStat struct {
	Name       string  `json:"name" yaml:"name"`
	Version    string  `json:"version" yaml:"version"`
	Visitors   float64 `json:"visitors" yaml:"visitors"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// OSStat is one row of the operating system breakdown.
type OSStat struct {
	Name       string  `json:"name" yaml:"name"`
	Version    string  `json:"version" yaml:"version"`
	Visitors   float64 `json:"visitors" yaml:"visitors"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// LanguageStat is one row of the language breakdown.
type LanguageStat struct {
	Code       string  `json:"code" yaml:"code"`
	Name       string  `json:"name" yaml:"name"`
	Visitors   float64 `json:"visitors" yaml:"visitors"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// HourBucket holds the visitors seen during one hour of the day.
type HourBucket struct {
	Hour           int     `json:"hour" yaml:"hour"`
	Visitors       float64 `json:"visitors" yaml:"visitors"`
	UniqueVisitors float64 `json:"uniqueVisitors" yaml:"uniqueVisitors"`
}

// SankeyGraph is handed to the chart as-is.
type SankeyGraph = any

// RecentVisit is one entry of the recent-visitor log.
type RecentVisit struct {
	Timestamp    string `json:"timestamp" yaml:"timestamp"`
	IP           string `json:"ip" yaml:"ip"`
	Country      string `json:"country" yaml:"country"`
	Browser      string `json:"browser" yaml:"browser"`
	OS           string `json:"os" yaml:"os"`
	Referrer     string `json:"referrer" yaml:"referrer"`
	ReferrerName string `json:"referrerName,omitempty" yaml:"referrerName,omitempty"`
}

// Report bundles every view extracted from one document.
type Report struct {
	TimeSeries       []TimePoint    `json:"timeSeries" yaml:"timeSeries"`
	Countries        []CountryStat  `json:"countries" yaml:"countries"`
	Browsers         []BrowserStat  `json:"browsers" yaml:"browsers"`
	OperatingSystems []OSStat       `json:"operatingSystems" yaml:"operatingSystems"`
	Languages        []LanguageStat `json:"languages" yaml:"languages"`
	Hourly           []HourBucket   `json:"hourly" yaml:"hourly"`
	Sankey           SankeyGraph    `json:"sankey" yaml:"sankey"`
	RecentVisits     []RecentVisit  `json:"recentVisitors" yaml:"recentVisitors"`
}

// Extractor names accepted by View.
const (
	ViewTimeSeries       = "timeSeries"
	ViewCountries        = "countries"
	ViewBrowsers         = "browsers"
	ViewOperatingSystems = "operatingSystems"
	ViewLanguages        = "languages"
	ViewHourly           = "hourly"
	ViewSankey           = "sankey"
	ViewRecentVisits     = "recentVisitors"
)

// Views lists every extractor name in report order.
var Views = []string{
	ViewTimeSeries,
	ViewCountries,
	ViewBrowsers,
	ViewOperatingSystems,
	ViewLanguages,
	ViewHourly,
	ViewSankey,
	ViewRecentVisits,
}

// Normalize runs every extractor against doc.
func Normalize(doc any) Report {
	return Report{
		TimeSeries:       TimeSeries(doc),
		Countries:        Countries(doc),
		Browsers:         Browsers(doc),
		OperatingSystems: OperatingSystems(doc),
		Languages:        Languages(doc),
		Hourly:           Hourly(doc),
		Sankey:           Sankey(doc),
		RecentVisits:     RecentVisits(doc),
	}
}

// View returns the named part of r, or false for an unknown name.
func (r Report) View(name string) (any, bool) {
	switch name {
	case ViewTimeSeries:
		return r.TimeSeries, true
	case ViewCountries:
		return r.Countries, true
	case ViewBrowsers:
		return r.Browsers, true
	case ViewOperatingSystems:
		return r.OperatingSystems, true
	case ViewLanguages:
		return r.Languages, true
	case ViewHourly:
		return r.Hourly, true
	case ViewSankey:
		return r.Sankey, true
	case ViewRecentVisits:
		return r.RecentVisits, true
	default:
		return nil, false
	}
}
