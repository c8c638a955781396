package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNoSession = errors.New("no session established")

type (
	// Session holds an authenticated Identity until logout.
	Session struct {
		ID        string    `json:"id"`
		Identity  Identity  `json:"identity"`
		CreatedAt time.Time `json:"created_at"` // UTC
	}

	// Store keeps sessions by ID. Load returns ErrNoSession for unknown IDs.
	Store interface {
		Save(ctx context.Context, sess Session) error
		Load(ctx context.Context, id string) (Session, error)
		Delete(ctx context.Context, id string) error
	}

	Manager struct {
		store Store
	}
)

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Login authenticates the user and establishes a new session.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	id, err := Authenticate(username, password)
	if err != nil {
		return Session{}, err
	}
	sess := Session{
		ID:        uuid.NewString(),
		Identity:  id,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return Session{}, errors.Wrap(err, "saving session")
	}
	return sess, nil
}

// Logout clears the session. Clearing an unknown session is not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNoSession
	}
	return m.store.Load(ctx, id)
}

type memoryStore struct {
	sync.RWMutex
	table map[string]Session
}

var _ Store = (*memoryStore)(nil) // interface compliance check

func NewMemoryStore() Store {
	return &memoryStore{table: make(map[string]Session)}
}

func (s *memoryStore) Save(_ context.Context, sess Session) error {
	s.Lock()
	defer s.Unlock()
	s.table[sess.ID] = sess
	return nil
}

func (s *memoryStore) Load(_ context.Context, id string) (Session, error) {
	s.RLock()
	defer s.RUnlock()
	if sess, ok := s.table[id]; ok {
		return sess, nil
	}
	return Session{}, ErrNoSession
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.Lock()
	defer s.Unlock()
	delete(s.table, id)
	return nil
}
