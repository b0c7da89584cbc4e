package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/sessions"

	goredis "github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "session:"
	userPrefix    = "user_sessions:"
	scanBatch     = 100
)

type SessionStore struct {
	client goredis.UniversalClient
}

func NewSessionStore(client goredis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id string) string  { return sessionPrefix + id }
func userKey(userID string) string { return userPrefix + userID }

type record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SessionStore) Create(ctx context.Context, sess sessions.Session) error {
	if strings.TrimSpace(sess.ID) == "" {
		return errors.New("session id required")
	}
	raw, err := json.Marshal(record(sess))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, sessionKey(sess.ID), raw, 0)
		p.ExpireAt(ctx, sessionKey(sess.ID), sess.ExpiresAt)
		p.SAdd(ctx, userKey(sess.UserID), sess.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis create session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (sessions.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return sessions.Session{}, sessions.ErrNotFound
	}
	if err != nil {
		return sessions.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return sessions.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sessions.Session(rec), nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, sessionKey(id))
		p.SRem(ctx, userKey(sess.UserID), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) (int, error) {
	ids, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}

	var del *goredis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		if len(keys) > 0 {
			del = p.Del(ctx, keys...)
		}
		p.Del(ctx, userKey(userID))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis delete user sessions: %w", err)
	}
	if del == nil {
		return 0, nil
	}
	return int(del.Val()), nil
}

// DeleteExpired: Redis ya borró las sesiones vencidas; acá se limpian los
// índices user_sessions:* que quedaron apuntando a ellas.
func (s *SessionStore) DeleteExpired(ctx context.Context, _ time.Time) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, userPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ids, err := s.client.SMembers(ctx, key).Result()
		if err != nil {
			return removed, fmt.Errorf("redis members %s: %w", key, err)
		}
		for _, id := range ids {
			n, err := s.client.Exists(ctx, sessionKey(id)).Result()
			if err != nil {
				return removed, fmt.Errorf("redis exists: %w", err)
			}
			if n > 0 {
				continue
			}
			if err := s.client.SRem(ctx, key, id).Err(); err != nil {
				return removed, fmt.Errorf("redis srem: %w", err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan: %w", err)
	}
	return removed, nil
}
