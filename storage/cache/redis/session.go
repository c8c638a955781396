package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

const keyPrefix = "session:"

// NewClient connects to redis with short timeouts.
func NewClient(conf core.SessionConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         conf.RedisAddr,
		DB:           conf.RedisDB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

type sessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ session.Store = (*sessionStore)(nil) // interface compliance check

// NewSessionStore keeps sessions in redis; they expire after ttl (never when ttl <= 0).
func NewSessionStore(client *redis.Client, ttl time.Duration) session.Store {
	if ttl < 0 {
		ttl = 0
	}
	return &sessionStore{client: client, ttl: ttl}
}

func (s *sessionStore) Save(ctx context.Context, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	return errors.Wrap(s.client.Set(ctx, keyPrefix+sess.ID, data, s.ttl).Err(), "saving session")
}

func (s *sessionStore) Load(ctx context.Context, id string) (session.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return session.Session{}, session.ErrNoSession
	} else if err != nil {
		return session.Session{}, errors.Wrap(err, "loading session")
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, errors.Wrap(err, "unmarshalling session")
	}
	return sess, nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.client.Del(ctx, keyPrefix+id).Err(), "deleting session")
}

// Healthy verifies redis connectivity.
func Healthy(ctx context.Context, client *redis.Client) bool {
	return client != nil && client.Ping(ctx).Err() == nil
}
