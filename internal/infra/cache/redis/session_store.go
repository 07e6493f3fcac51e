package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domaincalendar "staysia/internal/domain/calendar"
)

const maxUpdateRetries = 5

var ErrSessionConflict = errors.New("redis: calendar session changed concurrently")

// SessionStore keeps calendar sessions as JSON with a sliding TTL.
// Update runs fn inside WATCH/MULTI and retries when another writer wins.
type SessionStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewSessionStore(client goredis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return keyPrefix + "calendar:" + id
}

func (s *SessionStore) Create(ctx context.Context, session *domaincalendar.Session) error {
	if strings.TrimSpace(session.ID) == "" {
		return domaincalendar.ErrInvalidSessionID
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.ID), raw, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domaincalendar.Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domaincalendar.ErrInvalidSessionID
	}
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domaincalendar.ErrSessionNotFound
		}
		return nil, err
	}
	return decodeSession(raw)
}

func (s *SessionStore) Update(ctx context.Context, id string, fn func(*domaincalendar.Session) error) (*domaincalendar.Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domaincalendar.ErrInvalidSessionID
	}
	key := sessionKey(id)
	var result *domaincalendar.Session
	txf := func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				return domaincalendar.ErrSessionNotFound
			}
			return err
		}
		session, err := decodeSession(raw)
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		updated, err := json.Marshal(session)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.ttl)
			return nil
		})
		if err == nil {
			result = session
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrSessionConflict
}

func decodeSession(raw []byte) (*domaincalendar.Session, error) {
	var session domaincalendar.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

var _ domaincalendar.SessionStore = (*SessionStore)(nil)
