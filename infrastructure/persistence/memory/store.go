// Package memory holds the development server's in-process persistence.
// Everything lives behind a single mutex and is lost on restart, which is
// exactly what a local stub wants.
package memory

import (
	"crypto/sha256"
	"crypto/subtle"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"soundmap/domain/snapshot"
	apperrors "soundmap/pkg/errors"
)

type user struct {
	id           string
	username     string
	passwordHash [32]byte
}

// Store keeps user accounts and their saved networks in memory.
type Store struct {
	mu     sync.Mutex
	users  map[string]*user                // keyed by username
	saved  map[string][]*snapshot.Snapshot // keyed by user id, insertion order
	nextID int64
	now    func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*user),
		saved: make(map[string][]*snapshot.Snapshot),
		now:   time.Now,
	}
}

// CreateUser registers a new account. Usernames are unique.
func (s *Store) CreateUser(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return apperrors.NewValidationError("Username already exists")
	}
	s.users[username] = &user{
		id:           uuid.New().String(),
		username:     username,
		passwordHash: sha256.Sum256([]byte(password)),
	}
	return nil
}

// Authenticate checks a username/password pair.
func (s *Store) Authenticate(username, password string) bool {
	s.mu.Lock()
	u, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return false
	}
	sum := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(sum[:], u.passwordHash[:]) == 1
}

// HasUser reports whether the username is registered.
func (s *Store) HasUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

// SaveNetwork persists a snapshot for the user and returns the stored copy
// with its assigned id and creation time.
func (s *Store) SaveNetwork(username string, snap snapshot.Snapshot) (snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return snapshot.Snapshot{}, apperrors.NewUnauthorizedError("unknown user")
	}

	s.nextID++
	snap.ID = s.nextID
	snap.CreatedAt = s.now()
	snap.Graph = snapshot.Clean(snap.Graph)

	stored := snap
	s.saved[u.id] = append(s.saved[u.id], &stored)
	return snap, nil
}

// ListNetworks returns the user's snapshots, newest first.
func (s *Store) ListNetworks(username string) ([]snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, apperrors.NewUnauthorizedError("unknown user")
	}

	rows := s.saved[u.id]
	out := make([]snapshot.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpdateMemo replaces the memo on one of the user's snapshots.
func (s *Store) UpdateMemo(username string, id int64, memo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return apperrors.NewUnauthorizedError("unknown user")
	}
	for _, row := range s.saved[u.id] {
		if row.ID == id {
			row.Memo = memo
			return nil
		}
	}
	return apperrors.NewNotFoundError("network")
}

// DeleteNetwork removes one of the user's snapshots.
func (s *Store) DeleteNetwork(username string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return apperrors.NewUnauthorizedError("unknown user")
	}
	rows := s.saved[u.id]
	for i, row := range rows {
		if row.ID == id {
			s.saved[u.id] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("network")
}
