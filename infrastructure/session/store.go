package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Credential is the token pair plus the identity claim decoded from the
// access token. It is owned exclusively by the Store and always replaced
// as a whole: an access token is never observable without its identity.
type Credential struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	Identity     string `json:"identity"`
}

// Subscriber is notified after every credential transition. The bool
// reports whether a credential is present after the transition.
type Subscriber func(cred Credential, present bool)

// Store is the process-wide holder of the current credential. There is
// exactly one instance per running client, injected into everything that
// needs it. Dependent views subscribe to changes instead of re-reading
// the store on every render.
//
// When constructed with a file path the credential survives restarts:
// every transition rewrites the file atomically, Clear removes it.
type Store struct {
	mu      sync.RWMutex
	cred    Credential
	present bool
	file    string
	subs    []Subscriber
}

// NewStore creates a store. file may be empty for a purely in-memory
// store (tests); otherwise a previously persisted credential is loaded.
func NewStore(file string) *Store {
	s := &Store{file: file}
	s.load()
	return s
}

// SetCredential replaces the stored credential as a single atomic unit
func (s *Store) SetCredential(access, refresh, identity string) {
	s.mu.Lock()
	s.cred = Credential{AccessToken: access, RefreshToken: refresh, Identity: identity}
	s.present = true
	s.persistLocked()
	cred, present, subs := s.cred, s.present, s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, cred, present)
}

// SetAccessToken updates only the access token after a refresh, preserving
// the refresh token and identity. Without a current credential there is
// nothing to preserve, so the update is ignored.
func (s *Store) SetAccessToken(access string) {
	s.mu.Lock()
	if !s.present {
		s.mu.Unlock()
		return
	}
	s.cred.AccessToken = access
	s.persistLocked()
	cred, present, subs := s.cred, s.present, s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, cred, present)
}

// Clear removes the credential, representing logout. It reports whether a
// credential was actually present, so callers can act exactly once per
// session teardown even when several failures race into Clear.
func (s *Store) Clear() bool {
	s.mu.Lock()
	wasPresent := s.present
	s.cred = Credential{}
	s.present = false
	if s.file != "" {
		os.Remove(s.file)
	}
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if wasPresent {
		notify(subs, Credential{}, false)
	}
	return wasPresent
}

// Current returns the credential, or ok=false when absent
func (s *Store) Current() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.present
}

// Subscribe registers a change listener. The listener is invoked after
// every transition, outside the store's lock.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) snapshotSubs() []Subscriber {
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	return subs
}

func notify(subs []Subscriber, cred Credential, present bool) {
	for _, fn := range subs {
		fn(cred, present)
	}
}

// load restores a persisted credential. A missing or unreadable file just
// means no session.
func (s *Store) load() {
	if s.file == "" {
		return
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		return
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return
	}
	if cred.AccessToken == "" || cred.Identity == "" {
		return
	}
	s.cred = cred
	s.present = true
}

// persistLocked writes the credential file atomically (temp file + rename).
// Callers hold s.mu.
func (s *Store) persistLocked() {
	if s.file == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0o700); err != nil {
		return
	}
	data, err := json.Marshal(s.cred)
	if err != nil {
		return
	}
	tmp := s.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	os.Rename(tmp, s.file)
}
