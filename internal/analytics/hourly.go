package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// HoursPerDay is the length of every Hourly result.
const HoursPerDay = 24

var hourlyPaths = []string{
	"hourly",
	"hourlyDistribution",
	"hourlyStats",
	"byHour",
	"data.hourly",
	"data.hourlyDistribution",
}

// hourAliases ends with identifier fields that carry "HH:MM" style labels.
var hourAliases = []string{"hour", "hourOfDay", "_id", "id", "time", "label"}

// Hourly returns exactly 24 buckets ordered by hour. Entries for the same
// hour accumulate; entries without a usable hour are dropped.
func Hourly(doc any) []HourBucket {
	buckets := make([]HourBucket, HoursPerDay)
	for h := range buckets {
		buckets[h].Hour = h
	}

	raw, _ := Resolve(doc, hourlyPaths...)
	for _, item := range ToSlice(raw) {
		entry, ok := asObject(item)
		if !ok {
			continue
		}
		hour, ok := parseHour(field(entry, hourAliases...))
		if !ok {
			continue
		}
		buckets[hour].Visitors += ToNumber(field(entry, visitorsAliases...))
		buckets[hour].UniqueVisitors += ToNumber(field(entry, uniqueVisitorsAliases...))
	}
	return buckets
}

// parseHour accepts integral numbers and strings starting with digits
// ("7", "14:00", "09h") and reports whether the result is a valid hour.
func parseHour(v any) (int, bool) {
	var n float64

	switch value := v.(type) {
	case nil, bool, map[string]any, []any:
		return 0, false
	case string:
		digits := leadingDigits(strings.TrimSpace(value))
		if digits == "" {
			return 0, false
		}
		parsed, err := strconv.Atoi(digits)
		if err != nil {
			return 0, false
		}
		n = float64(parsed)
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return 0, false
		}
		n = f
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, false
	}
	if n < 0 || n >= HoursPerDay {
		return 0, false
	}
	return int(n), true
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
