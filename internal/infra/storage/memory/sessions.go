package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	domaincalendar "staysia/internal/domain/calendar"
	domainpricing "staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/events"
)

// SessionStore keeps calendar sessions in process. Each session is mutated under its own lock.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items map[string]*sessionSlot
}

type sessionSlot struct {
	mu      sync.Mutex
	session *domaincalendar.Session
	// expires is guarded by SessionStore.mu, not by the slot lock.
	expires time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now, items: make(map[string]*sessionSlot)}
}

func (s *SessionStore) Create(_ context.Context, session *domaincalendar.Session) error {
	if strings.TrimSpace(session.ID) == "" {
		return domaincalendar.ErrInvalidSessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.items[session.ID] = &sessionSlot{session: cloneSession(session), expires: s.expiry()}
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domaincalendar.Session, error) {
	slot, err := s.slot(id)
	if err != nil {
		return nil, err
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return cloneSession(slot.session), nil
}

func (s *SessionStore) Update(_ context.Context, id string, fn func(*domaincalendar.Session) error) (*domaincalendar.Session, error) {
	slot, err := s.slot(id)
	if err != nil {
		return nil, err
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	working := cloneSession(slot.session)
	if err := fn(working); err != nil {
		return nil, err
	}
	slot.session = cloneSession(working)
	s.touch(slot)
	return working, nil
}

func (s *SessionStore) slot(id string) (*sessionSlot, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domaincalendar.ErrInvalidSessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.items[id]
	if !ok {
		return nil, domaincalendar.ErrSessionNotFound
	}
	if !slot.expires.IsZero() && s.now().After(slot.expires) {
		delete(s.items, id)
		return nil, domaincalendar.ErrSessionNotFound
	}
	return slot, nil
}

func (s *SessionStore) touch(slot *sessionSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot.expires = s.expiry()
}

func (s *SessionStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

// purgeLocked drops expired sessions. s.mu must be held.
func (s *SessionStore) purgeLocked() {
	now := s.now()
	for id, slot := range s.items {
		if !slot.expires.IsZero() && now.After(slot.expires) {
			delete(s.items, id)
		}
	}
}

func cloneSession(in *domaincalendar.Session) *domaincalendar.Session {
	cp := *in
	cp.Entries = append([]domainpricing.Entry(nil), in.Entries...)
	cp.EventRecorder = events.EventRecorder{}
	return &cp
}

var _ domaincalendar.SessionStore = (*SessionStore)(nil)
