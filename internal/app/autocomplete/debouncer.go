package autocomplete

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	DefaultDelay  = 300 * time.Millisecond
	MinQueryRunes = 2
)

var ErrSuperseded = errors.New("autocomplete: superseded by a newer query")

// Place is one location suggestion.
type Place struct {
	PlaceID     string `json:"place_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

type Option func(*Debouncer)

func WithDelay(d time.Duration) Option {
	return func(db *Debouncer) {
		if d >= 0 {
			db.delay = d
		}
	}
}

// Debouncer coalesces rapid queries per client key. Only the latest query of a key reaches the geocoder.
type Debouncer struct {
	geocoder Geocoder
	delay    time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]pendingCall
}

type pendingCall struct {
	token  uint64
	cancel context.CancelFunc
}

func NewDebouncer(geocoder Geocoder, opts ...Option) *Debouncer {
	db := &Debouncer{
		geocoder: geocoder,
		delay:    DefaultDelay,
		pending:  make(map[string]pendingCall),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (d *Debouncer) Search(ctx context.Context, key, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryRunes {
		d.mu.Lock()
		d.cancelLocked(key)
		d.mu.Unlock()
		return []Place{}, nil
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.cancelLocked(key)
	d.seq++
	token := d.seq
	d.pending[key] = pendingCall{token: token, cancel: cancel}
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-callCtx.Done():
		return nil, d.abandoned(ctx, key, token)
	}

	places, err := d.geocoder.Search(callCtx, query)
	if !d.finish(key, token) {
		return nil, ErrSuperseded
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	if places == nil {
		places = []Place{}
	}
	return places, nil
}

// cancelLocked aborts the in-flight call of key, if any. d.mu must be held.
func (d *Debouncer) cancelLocked(key string) {
	if prev, ok := d.pending[key]; ok {
		prev.cancel()
		delete(d.pending, key)
	}
}

// finish clears the pending slot and reports whether token was still the latest for key.
func (d *Debouncer) finish(key string, token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	current, ok := d.pending[key]
	if !ok || current.token != token {
		return false
	}
	delete(d.pending, key)
	return true
}

func (d *Debouncer) abandoned(ctx context.Context, key string, token uint64) error {
	if d.finish(key, token) {
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrSuperseded
}
