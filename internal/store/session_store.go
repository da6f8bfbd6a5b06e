// Package store implements the distributed session store shared between
// the barrack server and the zone servers, backed by Redis. All
// cross-process coordination goes through its atomic operations.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Micenas/R1EMU/internal/barrack"
	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("store: redis unavailable")

// ErrSessionNotFound is returned when no record exists at the given key.
var ErrSessionNotFound = errors.New("store: session not found")

// moveGameSessionScript relocates a game-session record between partition
// keys in one atomic step: a concurrent reader observes the record at
// exactly one of the two keys, never at both and never at neither.
const moveGameSessionScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("RENAME", KEYS[1], KEYS[2])
return 1
`

var moveGameSessionLua = redis.NewScript(moveGameSessionScript)

// SessionStore persists barrack sessions in Redis. A session is stored
// twice: under its opaque socket-session key, and under the partition key
// (routerId, mapId, accountId) the zone servers look it up by.
type SessionStore struct {
	rdb redis.UniversalClient
}

func NewSessionStore(rdb redis.UniversalClient) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(key string) string {
	return "session:" + key
}

func gameKey(k barrack.GameSessionKey) string {
	return fmt.Sprintf("gs:%x:%x:%x", k.RouterID, uint32(k.MapID), k.AccountID)
}

// SaveSession writes the full session blob under both of its keys in one
// transaction.
func (s *SessionStore) SaveSession(ctx context.Context, sess *barrack.Session) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	skey := sessionKey(sess.Socket.SessionKey)
	gkey := gameKey(sess.CurrentGameKey())

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, skey, blob, 0)
		pipe.Set(ctx, gkey, blob, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// GetSession fetches a session by its socket-session key.
func (s *SessionStore) GetSession(ctx context.Context, key string) (*barrack.Session, error) {
	return s.get(ctx, sessionKey(key))
}

// GetGameSession fetches a session by its partition key.
func (s *SessionStore) GetGameSession(ctx context.Context, k barrack.GameSessionKey) (*barrack.Session, error) {
	return s.get(ctx, gameKey(k))
}

func (s *SessionStore) get(ctx context.Context, key string) (*barrack.Session, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	sess := &barrack.Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// MoveGameSession atomically relocates the game-session record from one
// partition key to another. Moving a missing record is an error and leaves
// both keys untouched.
func (s *SessionStore) MoveGameSession(ctx context.Context, from, to barrack.GameSessionKey) error {
	moved, err := moveGameSessionLua.Run(ctx, s.rdb, []string{gameKey(from), gameKey(to)}).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if moved == 0 {
		return fmt.Errorf("%w: no game session at %s", ErrSessionNotFound, gameKey(from))
	}
	return nil
}

// DeleteSession removes a session's socket-key record. The game-session
// record is left to the server that currently owns the partition.
func (s *SessionStore) DeleteSession(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, sessionKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping reports Redis availability.
func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
