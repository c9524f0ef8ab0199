package analytics

var (
	countryPaths = []string{
		"countries",
		"countryStats",
		"geographic",
		"geo",
		"locations",
		"data.countries",
		"data.geographic",
	}
	browserPaths = []string{
		"browsers",
		"browserStats",
		"devices.browsers",
		"data.browsers",
	}
	osPaths = []string{
		"os",
		"operatingSystems",
		"operating_systems",
		"osStats",
		"devices.os",
		"data.os",
		"data.operatingSystems",
	}
	languagePaths = []string{
		"languages",
		"languageStats",
		"data.languages",
	}
)

// Countries extracts the geographic breakdown. When the source reports no
// percentages at all they are derived from the visitor counts.
func Countries(doc any) []CountryStat {
	raw, _ := Resolve(doc, countryPaths...)
	items := ToSlice(raw)

	stats := make([]CountryStat, 0, len(items))
	for _, item := range items {
		entry, _ := asObject(item)
		stats = append(stats, CountryStat{
			Country:     toLabel(field(entry, "country", "name", "label")),
			CountryCode: toCountryCode(field(entry, "countryCode", "country_code", "code", "iso")),
			Visitors:    ToNumber(field(entry, visitorsAliases...)),
			Percentage:  toPercentage(field(entry, percentageAliases...)),
		})
	}

	backfillCountryPercentages(stats)
	return stats
}

func backfillCountryPercentages(stats []CountryStat) {
	var total float64
	for _, s := range stats {
		if s.Percentage != 0 {
			return
		}
		total += s.Visitors
	}
	if total <= 0 {
		return
	}

	for i := range stats {
		stats[i].Percentage = roundTo(stats[i].Visitors/total*100, 1)
	}
}

// Browsers extracts the browser breakdown.
func Browsers(doc any) []BrowserStat {
	raw, _ := Resolve(doc, browserPaths...)
	items := ToSlice(raw)

	stats := make([]BrowserStat, 0, len(items))
	for _, item := range items {
		entry, _ := asObject(item)
		stats = append(stats, BrowserStat{
			Name:       toLabel(field(entry, "name", "browser", "label")),
			Version:    toLabel(field(entry, "version", "browserVersion")),
			Visitors:   ToNumber(field(entry, visitorsAliases...)),
			Percentage: toPercentage(field(entry, percentageAliases...)),
		})
	}
	return stats
}

// OperatingSystems extracts the operating system breakdown.
func OperatingSystems(doc any) []OSStat {
	raw, _ := Resolve(doc, osPaths...)
	items := ToSlice(raw)

	stats := make([]OSStat, 0, len(items))
	for _, item := range items {
		entry, _ := asObject(item)
		stats = append(stats, OSStat{
			Name:       toLabel(field(entry, "name", "os", "label")),
			Version:    toLabel(field(entry, "version", "osVersion")),
			Visitors:   ToNumber(field(entry, visitorsAliases...)),
			Percentage: toPercentage(field(entry, percentageAliases...)),
		})
	}
	return stats
}

// Languages extracts the visitor language breakdown.
func Languages(doc any) []LanguageStat {
	raw, _ := Resolve(doc, languagePaths...)
	items := ToSlice(raw)

	stats := make([]LanguageStat, 0, len(items))
	for _, item := range items {
		entry, _ := asObject(item)
		stats = append(stats, LanguageStat{
			Code:       toLabel(field(entry, "code", "language", "lang", "locale")),
			Name:       toLabel(field(entry, "name", "languageName", "label")),
			Visitors:   ToNumber(field(entry, visitorsAliases...)),
			Percentage: toPercentage(field(entry, percentageAliases...)),
		})
	}
	return stats
}
