package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"staysia/internal/domain/shared/daterange"
)

var (
	ErrInvalidStatus = errors.New("pricing: invalid status")
	ErrInvalidPrice  = errors.New("pricing: price must be positive")
	ErrInvalidDate   = errors.New("pricing: invalid date")
)

type Status string

const (
	StatusAvailable  Status = "available"
	StatusBestDeal   Status = "best_deal"
	StatusPeakSeason Status = "peak_season"
	StatusSoldOut    Status = "sold_out"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusAvailable, StatusBestDeal, StatusPeakSeason, StatusSoldOut:
		return s, nil
	case "":
		return StatusAvailable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Entry is one day of a property's pricing calendar. Price is in whole IDR.
type Entry struct {
	Date   time.Time
	Price  int64
	Status Status
}

// Day returns the entry date as an ISO day string.
func (e Entry) Day() string {
	return daterange.FormatDay(e.Date)
}

// ParseEntry validates a raw row at the ingestion boundary.
func ParseEntry(date string, price int64, status string) (Entry, error) {
	day, err := daterange.ParseDay(date)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if price <= 0 {
		return Entry{}, ErrInvalidPrice
	}
	st, err := ParseStatus(status)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Date: day, Price: price, Status: st}, nil
}
