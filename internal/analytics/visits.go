package analytics

var (
	sankeyPaths = []string{
		"sankey",
		"referralFlow",
		"flow",
		"flows",
		"data.sankey",
		"data.referralFlow",
	}
	recentVisitPaths = []string{
		"recentVisitors",
		"recentVisits",
		"recent",
		"visitorLog",
		"data.recentVisitors",
		"data.recentVisits",
	}
)

// Sankey returns the referral flow graph untouched, or nil when the document
// has none.
func Sankey(doc any) SankeyGraph {
	graph, _ := Resolve(doc, sankeyPaths...)
	return graph
}

// RecentVisits extracts the recent-visitor log. Missing fields are left empty.
func RecentVisits(doc any) []RecentVisit {
	raw, _ := Resolve(doc, recentVisitPaths...)
	items := ToSlice(raw)

	visits := make([]RecentVisit, 0, len(items))
	for _, item := range items {
		entry, _ := asObject(item)
		visits = append(visits, RecentVisit{
			Timestamp: toLabel(field(entry, "timestamp", "createdAt", "created_at", "visitedAt", "time")),
			IP:        toLabel(field(entry, "ip", "ipAddress", "ip_address")),
			Country:   toLabel(field(entry, "country", "countryName", "location.country", "geo.country")),
			Browser:   toLabel(field(entry, "browser", "browserName", "userAgent.browser", "device.browser")),
			OS:        toLabel(field(entry, "os", "operatingSystem", "userAgent.os", "device.os")),
			Referrer:  toLabel(field(entry, "referrer", "referer", "source", "ref")),
		})
	}
	return visits
}
