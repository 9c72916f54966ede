package trend

import (
	"errors"
	"strconv"
	"time"

	"github.com/Fikiresilase/mini-finance/internal/ledger"
)

// Granularity selects the bucket size of a trend series.
type Granularity string

const (
	// GranularityDay yields 24 hourly buckets ending at the current hour.
	GranularityDay Granularity = "day"
	// GranularityWeek yields 7 daily buckets ending today.
	GranularityWeek Granularity = "week"
	// GranularityMonth yields 30 daily buckets ending today.
	GranularityMonth Granularity = "month"
)

// ErrUnknownGranularity indicates an unrecognised granularity name.
var ErrUnknownGranularity = errors.New("trend: unknown granularity")

// ParseGranularity maps a query value onto a Granularity, defaulting empty to week.
func ParseGranularity(value string) (Granularity, error) {
	switch value {
	case string(GranularityDay):
		return GranularityDay, nil
	case "", string(GranularityWeek):
		return GranularityWeek, nil
	case string(GranularityMonth):
		return GranularityMonth, nil
	default:
		return "", ErrUnknownGranularity
	}
}

// Series is a fixed-size bucketed revenue curve for charting.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// bucketKey identifies a bucket by local calendar position. Hour is -1 for
// daily buckets.
type bucketKey struct {
	year  int
	month time.Month
	day   int
	hour  int
}

// BuildSeries buckets sale revenue into a fixed window ending at now.
// Deterministic given (sales, granularity, now); sales outside the window are
// excluded, never clamped into an edge bucket.
func BuildSeries(sales []ledger.Sale, granularity Granularity, now time.Time) Series {
	var (
		buckets int
		hourly  bool
	)
	switch granularity {
	case GranularityDay:
		buckets, hourly = 24, true
	case GranularityMonth:
		buckets = 30
	default:
		buckets = 7
	}

	series := Series{
		Labels: make([]string, buckets),
		Values: make([]float64, buckets),
	}
	index := make(map[bucketKey]int, buckets)
	for i := 0; i < buckets; i++ {
		var at time.Time
		if hourly {
			at = now.Add(-time.Duration(buckets-1-i) * time.Hour)
		} else {
			at = now.AddDate(0, 0, -(buckets - 1 - i))
		}
		index[keyFor(at, hourly)] = i
		series.Labels[i] = labelFor(at, granularity)
	}

	for _, sale := range sales {
		at := sale.Timestamp.In(now.Location())
		if i, ok := index[keyFor(at, hourly)]; ok {
			series.Values[i] += sale.Price
		}
	}
	return series
}

func keyFor(at time.Time, hourly bool) bucketKey {
	year, month, day := at.Date()
	key := bucketKey{year: year, month: month, day: day, hour: -1}
	if hourly {
		key.hour = at.Hour()
	}
	return key
}

func labelFor(at time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityDay:
		return at.Format("03:04 PM")
	case GranularityMonth:
		return strconv.Itoa(at.Day())
	default:
		return at.Format("Mon")
	}
}
