package api

import (
	"sync"

	"assetdeck/internal/domain"
)

// memStore is an in-memory CredentialSink with the same per-field save
// semantics as the sqlite store: empty fields are skipped on Save.
type memStore struct {
	mu   sync.Mutex
	cred domain.Credential
}

func (m *memStore) Load() (domain.Credential, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred, m.cred.Present(), nil
}

func (m *memStore) Save(c domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.AccessToken != "" {
		m.cred.AccessToken = c.AccessToken
	}
	if c.RefreshToken != "" {
		m.cred.RefreshToken = c.RefreshToken
	}
	if c.AuthUser != "" {
		m.cred.AuthUser = c.AuthUser
	}
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = domain.Credential{}
	return nil
}
