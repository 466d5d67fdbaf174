package huntoza

import "sync"

// TokenStore holds the process-wide access/refresh token pair. It is mutated
// only by login, refresh and logout; every outgoing request reads the latest
// access token synchronously before dispatch.
type TokenStore struct {
	mu       sync.RWMutex
	access   string
	refresh  string
	onChange func(access, refresh string)
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// OnChange registers a persistence hook invoked after every token mutation.
// The hook runs outside the store lock.
func (s *TokenStore) OnChange(fn func(access, refresh string)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *TokenStore) Set(access, refresh string) {
	s.mu.Lock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	fn := s.onChange
	a, r := s.access, s.refresh
	s.mu.Unlock()

	if fn != nil {
		fn(a, r)
	}
}

func (s *TokenStore) Clear() {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn("", "")
	}
}

func (s *TokenStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *TokenStore) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}
