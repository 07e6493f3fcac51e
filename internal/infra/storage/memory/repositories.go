package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/events"
)

// PropertyRepository is an in-memory catalog for local runs and tests.
type PropertyRepository struct {
	mu     sync.RWMutex
	items  map[domainproperties.PropertyID]*domainproperties.Property
	nextID domainproperties.PropertyID
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[domainproperties.PropertyID]*domainproperties.Property)}
}

func (r *PropertyRepository) ByID(_ context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainproperties.ErrNotFound
	}
	return cloneProperty(p), nil
}

func (r *PropertyRepository) Search(_ context.Context, params domainproperties.SearchParams) ([]*domainproperties.Property, error) {
	opts := params.Normalized()
	r.mu.RLock()
	matched := make([]*domainproperties.Property, 0, len(r.items))
	for _, p := range r.items {
		if opts.Matches(p) {
			matched = append(matched, cloneProperty(p))
		}
	}
	r.mu.RUnlock()

	domainproperties.SortProperties(matched, opts.Sort)
	if opts.Offset >= len(matched) {
		return []*domainproperties.Property{}, nil
	}
	end := opts.Offset + opts.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[opts.Offset:end], nil
}

func (r *PropertyRepository) Save(_ context.Context, p *domainproperties.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	} else if p.ID > r.nextID {
		r.nextID = p.ID
	}
	r.items[p.ID] = cloneProperty(p)
	return nil
}

func cloneProperty(p *domainproperties.Property) *domainproperties.Property {
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	cp.Amenities = append([]string(nil), p.Amenities...)
	cp.EventRecorder = events.EventRecorder{}
	return &cp
}

type RoomRepository struct {
	mu     sync.RWMutex
	items  map[domainproperties.PropertyID][]domainproperties.Room
	nextID int64
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[domainproperties.PropertyID][]domainproperties.Room)}
}

func (r *RoomRepository) ListByProperty(_ context.Context, id domainproperties.PropertyID) ([]domainproperties.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domainproperties.Room{}, r.items[id]...), nil
}

func (r *RoomRepository) Add(_ context.Context, room domainproperties.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	room.ID = r.nextID
	r.items[room.PropertyID] = append(r.items[room.PropertyID], room)
	return nil
}

type ReviewRepository struct {
	mu     sync.RWMutex
	items  map[domainproperties.PropertyID][]domainreviews.Review
	nextID int64
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{items: make(map[domainproperties.PropertyID][]domainreviews.Review)}
}

func (r *ReviewRepository) ListByProperty(_ context.Context, id domainproperties.PropertyID) ([]domainreviews.Review, error) {
	r.mu.RLock()
	out := append([]domainreviews.Review{}, r.items[id]...)
	r.mu.RUnlock()
	domainreviews.SortNewestFirst(out)
	return out, nil
}

func (r *ReviewRepository) Add(_ context.Context, rv domainreviews.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rv.ID = r.nextID
	r.items[rv.PropertyID] = append(r.items[rv.PropertyID], rv)
	return nil
}

// PricingRepository keeps one entry per property and day.
type PricingRepository struct {
	mu    sync.RWMutex
	items map[int64]map[string]domainpricing.Entry
}

func NewPricingRepository() *PricingRepository {
	return &PricingRepository{items: make(map[int64]map[string]domainpricing.Entry)}
}

func (r *PricingRepository) Range(_ context.Context, propertyID int64, from, to time.Time) ([]domainpricing.Entry, error) {
	from, to = daterange.Day(from), daterange.Day(to)
	r.mu.RLock()
	out := make([]domainpricing.Entry, 0, len(r.items[propertyID]))
	for _, e := range r.items[propertyID] {
		day := daterange.Day(e.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		out = append(out, e)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *PricingRepository) Upsert(_ context.Context, propertyID int64, entries []domainpricing.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDay, ok := r.items[propertyID]
	if !ok {
		byDay = make(map[string]domainpricing.Entry, len(entries))
		r.items[propertyID] = byDay
	}
	for _, e := range entries {
		byDay[daterange.FormatDay(e.Date)] = e
	}
	return nil
}

var (
	_ domainproperties.Repository     = (*PropertyRepository)(nil)
	_ domainproperties.RoomRepository = (*RoomRepository)(nil)
	_ domainreviews.Repository        = (*ReviewRepository)(nil)
	_ domainpricing.Repository        = (*PricingRepository)(nil)
)
