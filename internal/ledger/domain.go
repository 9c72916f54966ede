package ledger

import (
	"errors"
	"time"
)

// Sale is an immutable record of one unit sold. It snapshots the item's name,
// prices and category at sale time; later item mutations never touch it.
// JSON field names are part of the persisted schema.
type Sale struct {
	ItemID        string    `json:"itemId"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Category      string    `json:"category"`
	Timestamp     time.Time `json:"timestamp"`
}

// Profit returns the margin captured by this sale.
func (s Sale) Profit() float64 {
	return s.Price - s.OriginalPrice
}

// Summary aggregates a set of sales.
type Summary struct {
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalProfit  float64 `json:"totalProfit"`
}

// Window selects the reporting range for ledger queries.
type Window string

const (
	// WindowDay covers the current local calendar date.
	WindowDay Window = "day"
	// WindowWeek covers the rolling last 7 days, not calendar-aligned.
	WindowWeek Window = "week"
	// WindowMonth covers the rolling last 30 days, not calendar-aligned.
	WindowMonth Window = "month"
)

// ErrUnknownWindow indicates an unrecognised window name.
var ErrUnknownWindow = errors.New("ledger: unknown window")

// ParseWindow maps a query value onto a Window, defaulting empty to day.
func ParseWindow(value string) (Window, error) {
	switch value {
	case "", string(WindowDay):
		return WindowDay, nil
	case string(WindowWeek):
		return WindowWeek, nil
	case string(WindowMonth):
		return WindowMonth, nil
	default:
		return "", ErrUnknownWindow
	}
}

// Since returns the inclusive lower bound of the window relative to now.
// Day cuts at local midnight; week and month are rolling offsets.
func (w Window) Since(now time.Time) time.Time {
	switch w {
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case WindowMonth:
		return now.AddDate(0, 0, -30)
	default:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	}
}
