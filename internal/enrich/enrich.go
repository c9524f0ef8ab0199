// Package enrich prepares normalized analytics records for display: country
// names and codes, browser and OS casing, language names, visitor locations
// and referrer labels. It never removes or reorders records.
package enrich

import (
	"log/slog"
	"strings"

	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"linkstats/internal/analytics"
	"linkstats/internal/pkg/referrers"
)

// Unknown replaces empty browser and OS names.
const Unknown = "Unknown"

// CountryLocator resolves an IP address to an ISO alpha-2 code, or "".
type CountryLocator interface {
	CountryCode(ip string) string
}

// Enricher is safe for concurrent use.
type Enricher struct {
	countries *gountries.Query
	locator   CountryLocator
	logger    *slog.Logger
}

// New returns an Enricher. locator may be nil when no GeoIP database is configured.
func New(locator CountryLocator, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{
		countries: gountries.New(),
		locator:   locator,
		logger:    logger,
	}
}

// Apply enriches r in place.
func (e *Enricher) Apply(r *analytics.Report) {
	for i := range r.Countries {
		e.country(&r.Countries[i])
	}
	for i := range r.Browsers {
		r.Browsers[i].Name = BrowserName(r.Browsers[i].Name)
	}
	for i := range r.OperatingSystems {
		r.OperatingSystems[i].Name = OSName(r.OperatingSystems[i].Name)
	}
	for i := range r.Languages {
		if r.Languages[i].Name == "" {
			r.Languages[i].Name = LanguageName(r.Languages[i].Code)
		}
	}
	for i := range r.RecentVisits {
		e.visit(&r.RecentVisits[i])
	}
}

func (e *Enricher) country(stat *analytics.CountryStat) {
	if stat.CountryCode == nil {
		if found, ok := e.lookup(stat.Country); ok {
			code := found.Codes.Alpha2
			stat.CountryCode = &code
			if isCode(stat.Country) {
				stat.Country = found.Name.Common
			}
		}
		return
	}

	if stat.Country == "" || isCode(stat.Country) {
		if found, err := e.countries.FindCountryByAlpha(*stat.CountryCode); err == nil {
			stat.Country = found.Name.Common
		}
	}
}

func (e *Enricher) visit(v *analytics.RecentVisit) {
	if v.Country == "" && v.IP != "" && e.locator != nil {
		if code := e.locator.CountryCode(v.IP); code != "" {
			v.Country = e.CountryName(code)
			e.logger.Debug("Located visitor", slog.String("ip", v.IP), slog.String("country", code))
		}
	} else if isCode(v.Country) {
		v.Country = e.CountryName(v.Country)
	}

	if v.Browser != "" {
		v.Browser = BrowserName(v.Browser)
	}
	if v.OS != "" {
		v.OS = OSName(v.OS)
	}
	v.ReferrerName = referrers.Label(v.Referrer)
}

// CountryName returns the common English name for an alpha-2 or alpha-3
// code, or the upper-cased code when it is not recognised.
func (e *Enricher) CountryName(code string) string {
	found, err := e.countries.FindCountryByAlpha(code)
	if err != nil {
		return cases.Upper(language.AmericanEnglish).String(code)
	}
	return found.Name.Common
}

func (e *Enricher) lookup(name string) (gountries.Country, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return gountries.Country{}, false
	}
	if isCode(name) {
		found, err := e.countries.FindCountryByAlpha(name)
		return found, err == nil
	}
	found, err := e.countries.FindCountryByName(name)
	return found, err == nil
}

// BrowserName title-cases lower-case browser names and leaves anything
// already cased by the source alone.
func BrowserName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return Unknown
	}
	if name != strings.ToLower(name) {
		return name
	}
	return cases.Title(language.AmericanEnglish).String(name)
}

// OSName applies the vendor spelling of Apple platforms and otherwise
// behaves like BrowserName.
func OSName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ios", "iphone os":
		return "iOS"
	case "ipados":
		return "iPadOS"
	case "macos", "mac os", "mac os x", "darwin":
		return "macOS"
	}
	return BrowserName(name)
}

// LanguageName returns the English display name for a BCP 47 code, or ""
// when the code does not parse.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}

func isCode(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 2 && len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
