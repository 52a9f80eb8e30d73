package model

// ScanAnalytics is the derived, read-time aggregation over a link's scan
// events. It is recomputed on every request and never persisted. TotalScans
// counts the events actually fetched (bounded by the recent-window cap), so
// it reads as "recent scans", not an all-time total.
type ScanAnalytics struct {
	TotalScans     int               `json:"totalScans"`
	ScansByDay     []TimeSeriesPoint `json:"scansByDay"`     // ascending by date
	ScansByDevice  []BucketCount     `json:"scansByDevice"`  // descending by count
	ScansByOS      []BucketCount     `json:"scansByOS"`      // descending by count
	ScansByCountry []BucketCount     `json:"scansByCountry"` // descending by count
}

// TimeSeriesPoint represents a point in time-series data
type TimeSeriesPoint struct {
	Date  string `json:"date"`  // Date in "YYYY-MM-DD" format (UTC)
	Count int    `json:"count"` // Number of scans on this date
}

// BucketCount is one grouping bucket (device type, OS, or country)
type BucketCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
