package analytics

var timeSeriesPaths = []string{
	"timeSeries",
	"timeseries",
	"time_series",
	"clicksOverTime",
	"series",
	"data.timeSeries",
	"data.timeseries",
}

// Field aliases shared by the extractors, highest priority first.
var (
	visitorsAliases       = []string{"visitors", "totalVisitors", "count", "value"}
	uniqueVisitorsAliases = []string{"uniqueVisitors", "unique_visitors", "unique"}
	percentageAliases     = []string{"percentage", "percent", "share"}
)

// TimeSeries extracts one TimePoint per reported interval.
func TimeSeries(doc any) []TimePoint {
	raw, _ := Resolve(doc, timeSeriesPaths...)
	items := ToSlice(raw)

	points := make([]TimePoint, 0, len(items))
	for _, item := range items {
		entry, _ := asObject(item)
		points = append(points, TimePoint{
			Date:           toLabel(field(entry, "date", "label", "day", "period", "timestamp")),
			Visitors:       ToNumber(field(entry, visitorsAliases...)),
			Clicks:         ToNumber(field(entry, "clicks", "totalClicks", "hits")),
			UniqueVisitors: ToNumber(field(entry, uniqueVisitorsAliases...)),
		})
	}
	return points
}
