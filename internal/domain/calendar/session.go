package calendar

import (
	"context"
	"errors"
	"strings"
	"time"

	"staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/events"
	"staysia/internal/domain/shared/money"
)

var (
	ErrSessionNotFound     = errors.New("calendar: session not found")
	ErrInvalidSessionID    = errors.New("calendar: invalid session id")
	ErrSelectionIncomplete = errors.New("calendar: check-in and check-out must both be selected")
	ErrSoldOutInRange      = errors.New("calendar: selected range contains sold out nights")
)

// HorizonDays is how far ahead a session loads pricing.
const HorizonDays = 90

// Session is one opened calendar: the pricing snapshot of a property plus the viewer's selection.
type Session struct {
	ID           string          `json:"id"`
	PropertyID   int64           `json:"property_id"`
	PropertyName string          `json:"property_name"`
	BasePrice    int64           `json:"base_price"`
	Entries      []pricing.Entry `json:"entries"`
	Selection    Selection       `json:"selection"`
	Locale       string          `json:"locale"`
	Currency     string          `json:"currency"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	index *pricing.Index
	events.EventRecorder
}

type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// Update loads the session, applies fn and persists the result. Concurrent updates of one session are serialized.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}

func NewSession(id string, propertyID int64, name string, basePrice int64, entries []pricing.Entry, prefs money.Preferences, now time.Time) *Session {
	return &Session{
		ID:           id,
		PropertyID:   propertyID,
		PropertyName: strings.TrimSpace(name),
		BasePrice:    basePrice,
		Entries:      append([]pricing.Entry(nil), entries...),
		Locale:       prefs.Locale,
		Currency:     prefs.Currency.Code,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
}

// Index lazily builds the pricing index from the snapshot.
func (s *Session) Index() pricing.Index {
	if s.index == nil {
		idx := pricing.BuildIndex(s.Entries, s.BasePrice)
		s.index = &idx
	}
	return *s.index
}

func (s *Session) Preferences() money.Preferences {
	prefs, err := money.NewPreferences(s.Locale, s.Currency)
	if err != nil {
		return money.DefaultPreferences()
	}
	return prefs
}

// SelectDate applies a click and records RangeSelected when the click completes the range.
func (s *Session) SelectDate(day time.Time, now time.Time) bool {
	idx := s.Index()
	s.Selection.OnRangeComplete(func(r daterange.DateRange) {
		evt := RangeSelected{
			SessionID:  s.ID,
			PropertyID: s.PropertyID,
			Range:      r,
			Nights:     r.Nights(),
			At:         now.UTC(),
		}
		if quote, err := idx.Quote(r); err == nil {
			evt.Total = quote.Total.Amount
		}
		s.Record(evt)
	})
	defer s.Selection.OnRangeComplete(nil)

	changed := s.Selection.SelectDate(day, daterange.Today(now), func(d time.Time) pricing.Status {
		return idx.Lookup(d).Status
	})
	if changed {
		s.UpdatedAt = now.UTC()
	}
	return changed
}

func (s *Session) ClearSelection(now time.Time) {
	s.Selection.Clear()
	s.UpdatedAt = now.UTC()
}

// Stay returns the complete selection and its quote, rejecting ranges with sold-out nights.
func (s *Session) Stay() (daterange.DateRange, pricing.PriceBreakdown, error) {
	r, ok := s.Selection.Range()
	if !ok {
		return daterange.DateRange{}, pricing.PriceBreakdown{}, ErrSelectionIncomplete
	}
	idx := s.Index()
	if len(idx.SoldOutWithin(r)) > 0 {
		return daterange.DateRange{}, pricing.PriceBreakdown{}, ErrSoldOutInRange
	}
	quote, err := idx.Quote(r)
	if err != nil {
		return daterange.DateRange{}, pricing.PriceBreakdown{}, err
	}
	return r, quote, nil
}
