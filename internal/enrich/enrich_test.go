package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkstats/internal/analytics"
	"linkstats/internal/logging"
	"linkstats/internal/pkg/referrers"
)

type fakeLocator map[string]string

func (f fakeLocator) CountryCode(ip string) string {
	return f[ip]
}

func strPtr(s string) *string { return &s }

func TestApplyCountries(t *testing.T) {
	report := analytics.Report{
		Countries: []analytics.CountryStat{
			{Country: "Germany", Visitors: 5},
			{Country: "es", Visitors: 4},
			{Country: "", CountryCode: strPtr("US"), Visitors: 3},
			{Country: "FRA", CountryCode: strPtr("FR"), Visitors: 2},
			{Country: "Atlantis", Visitors: 1},
		},
	}

	New(nil, logging.Discard()).Apply(&report)

	require.Len(t, report.Countries, 5)

	require.NotNil(t, report.Countries[0].CountryCode)
	assert.Equal(t, "DE", *report.Countries[0].CountryCode)
	assert.Equal(t, "Germany", report.Countries[0].Country)

	require.NotNil(t, report.Countries[1].CountryCode)
	assert.Equal(t, "ES", *report.Countries[1].CountryCode)
	assert.Equal(t, "Spain", report.Countries[1].Country)

	assert.Equal(t, "United States", report.Countries[2].Country)
	assert.Equal(t, "France", report.Countries[3].Country)

	assert.Equal(t, "Atlantis", report.Countries[4].Country)
	assert.Nil(t, report.Countries[4].CountryCode)

	assert.Equal(t, 5.0, report.Countries[0].Visitors, "counts are untouched")
}

func TestApplyRecentVisits(t *testing.T) {
	locator := fakeLocator{"203.0.113.9": "PE"}
	report := analytics.Report{
		RecentVisits: []analytics.RecentVisit{
			{IP: "203.0.113.9", Browser: "firefox", OS: "ios", Referrer: "https://www.reddit.com/r/golang"},
			{IP: "198.51.100.1", Country: "de", Browser: "Chrome Mobile", OS: "Mac OS X"},
			{IP: "192.0.2.1", Country: "Chile"},
		},
	}

	New(locator, logging.Discard()).Apply(&report)

	first := report.RecentVisits[0]
	assert.Equal(t, "Peru", first.Country)
	assert.Equal(t, "Firefox", first.Browser)
	assert.Equal(t, "iOS", first.OS)
	assert.Equal(t, "Reddit", first.ReferrerName)
	assert.Equal(t, "https://www.reddit.com/r/golang", first.Referrer)

	second := report.RecentVisits[1]
	assert.Equal(t, "Germany", second.Country)
	assert.Equal(t, "Chrome Mobile", second.Browser)
	assert.Equal(t, "macOS", second.OS)
	assert.Equal(t, referrers.Direct, second.ReferrerName)

	third := report.RecentVisits[2]
	assert.Equal(t, "Chile", third.Country)
	assert.Empty(t, third.Browser)
	assert.Empty(t, third.OS)
}

func TestApplyWithoutLocatorKeepsCountryEmpty(t *testing.T) {
	report := analytics.Report{RecentVisits: []analytics.RecentVisit{{IP: "203.0.113.9"}}}

	New(nil, nil).Apply(&report)

	assert.Empty(t, report.RecentVisits[0].Country)
}

func TestApplyBreakdownNames(t *testing.T) {
	report := analytics.Report{
		Browsers:         []analytics.BrowserStat{{Name: "chrome"}, {Name: ""}, {Name: "UC Browser"}},
		OperatingSystems: []analytics.OSStat{{Name: "darwin"}, {Name: "ipados"}, {Name: "windows"}},
		Languages:        []analytics.LanguageStat{{Code: "es"}, {Code: "de", Name: "Deutsch"}, {Code: "!!"}},
	}

	New(nil, nil).Apply(&report)

	assert.Equal(t, "Chrome", report.Browsers[0].Name)
	assert.Equal(t, Unknown, report.Browsers[1].Name)
	assert.Equal(t, "UC Browser", report.Browsers[2].Name)

	assert.Equal(t, "macOS", report.OperatingSystems[0].Name)
	assert.Equal(t, "iPadOS", report.OperatingSystems[1].Name)
	assert.Equal(t, "Windows", report.OperatingSystems[2].Name)

	assert.Equal(t, "Spanish", report.Languages[0].Name)
	assert.Equal(t, "Deutsch", report.Languages[1].Name)
	assert.Empty(t, report.Languages[2].Name)
}

func TestApplyKeepsHourlyAndSankey(t *testing.T) {
	report := analytics.Normalize(map[string]any{
		"sankey": map[string]any{"nodes": []any{}},
		"hourly": []any{map[string]any{"hour": 5, "visitors": 2}},
	})
	before := report.Hourly[5]

	New(nil, nil).Apply(&report)

	assert.Len(t, report.Hourly, 24)
	assert.Equal(t, before, report.Hourly[5])
	assert.Equal(t, map[string]any{"nodes": []any{}}, report.Sankey)
}

func TestCountryName(t *testing.T) {
	e := New(nil, nil)
	assert.Equal(t, "Japan", e.CountryName("jp"))
	assert.Equal(t, "Japan", e.CountryName("JPN"))
	assert.Equal(t, "XX", e.CountryName("xx"))
}

func TestIsCode(t *testing.T) {
	assert.True(t, isCode("us"))
	assert.True(t, isCode("USA"))
	assert.False(t, isCode("Peru"))
	assert.False(t, isCode("U1"))
	assert.False(t, isCode(""))
}
