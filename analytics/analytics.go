package analytics

import (
	"context"
	"sort"

	"github.com/cet3001/CreatorShelf/model"
	"github.com/cet3001/CreatorShelf/store"
	"github.com/cet3001/CreatorShelf/utils"
)

// unknownDay buckets events whose timestamp was never recorded.
const unknownDay = "unknown"

// Service computes scan analytics for the owning app. Nothing here is
// persisted; every call recomputes from the recent scan window.
type Service struct {
	store  *store.Store
	window int // max events read per aggregation
}

func NewService(s *store.Store, window int) *Service {
	return &Service{store: s, window: window}
}

// ForLink reads up to the configured window of most-recent scan events and
// aggregates them. TotalScans reflects the fetched window, so very
// high-traffic links report recent, not all-time, numbers.
func (s *Service) ForLink(ctx context.Context, linkID string) (model.ScanAnalytics, error) {
	events, err := s.store.RecentScanEvents(ctx, linkID, s.window)
	if err != nil {
		return model.ScanAnalytics{}, err
	}
	return Aggregate(events), nil
}

// Aggregate groups scan events by UTC calendar day, device type, OS, and
// country. Day buckets sort ascending by date (lexical order is
// chronological for ISO dates); the other groupings sort descending by
// count with first-seen input order as the tie-break. Identical input
// always produces identical output.
func Aggregate(events []model.ScanEvent) model.ScanAnalytics {
	byDay := map[string]int{}
	byDevice := newBucketSet()
	byOS := newBucketSet()
	byCountry := newBucketSet()

	for _, event := range events {
		day := unknownDay
		if !event.ScannedAt.IsZero() {
			day = event.ScannedAt.UTC().Format("2006-01-02")
		}
		byDay[day]++

		byDevice.add(event.DeviceType)
		byOS.add(event.OS)
		byCountry.add(event.Country)
	}

	days := make([]model.TimeSeriesPoint, 0, len(byDay))
	for day, count := range byDay {
		days = append(days, model.TimeSeriesPoint{Date: day, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return model.ScanAnalytics{
		TotalScans:     len(events),
		ScansByDay:     days,
		ScansByDevice:  byDevice.sorted(),
		ScansByOS:      byOS.sorted(),
		ScansByCountry: byCountry.sorted(),
	}
}

// bucketSet counts occurrences while remembering first-seen order so that
// equal counts sort deterministically.
type bucketSet struct {
	counts map[string]int
	order  []string
}

func newBucketSet() *bucketSet {
	return &bucketSet{counts: map[string]int{}}
}

func (b *bucketSet) add(value *string) {
	key := utils.Unknown
	if value != nil && *value != "" {
		key = *value
	}
	if _, seen := b.counts[key]; !seen {
		b.order = append(b.order, key)
	}
	b.counts[key]++
}

func (b *bucketSet) sorted() []model.BucketCount {
	buckets := make([]model.BucketCount, 0, len(b.order))
	for _, key := range b.order {
		buckets = append(buckets, model.BucketCount{Key: key, Count: b.counts[key]})
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Count > buckets[j].Count })
	return buckets
}
