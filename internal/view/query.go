package view

import (
	"net/url"
	"strconv"
)

// UpdateFromQuery translates URL query parameters into a partial view update,
// read once when a page session starts. Recognized parameters: chartType
// (line|bar), timeRange (day|week|month), metric (price|volume|change),
// points, theme (light|dark). Absent parameters leave the defaults; invalid
// values fall back to them when the update is applied.
func UpdateFromQuery(query url.Values) Update {
	var u Update
	if v := query.Get("chartType"); v != "" {
		u.ChartKind = &v
	}
	if v := query.Get("timeRange"); v != "" {
		u.TimeRange = &v
	}
	if v := query.Get("metric"); v != "" {
		u.Metric = &v
	}
	if v := query.Get("points"); v != "" {
		if count, err := strconv.Atoi(v); err == nil {
			u.PointCount = &count
		}
	}
	if v := query.Get("theme"); v != "" {
		u.Theme = &v
	}
	return u
}
