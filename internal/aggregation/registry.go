package aggregation

import (
	"sync"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v2"
)

// Registry выдаёт State по идентификатору пользователя.
// Неактивные состояния вытесняются по TTL, а при переполнении по LRU.
type Registry struct {
	mu     sync.Mutex
	ttl    time.Duration
	states cache.Cache[string, *State]
}

// NewRegistry создаёт реестр на maxUsers пользователей с временем жизни ttl.
func NewRegistry(ttl time.Duration, maxUsers int) *Registry {
	return &Registry{
		ttl: ttl,
		states: cache.NewCache[string, *State]().
			WithLRU().
			WithMaxKeys(maxUsers).
			WithTTL(ttl),
	}
}

// Get возвращает состояние пользователя, создавая его при отсутствии.
// Каждое обращение продлевает время жизни.
func (r *Registry) Get(userID string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states.Get(userID)
	if !ok {
		st = NewState()
	}
	r.states.Set(userID, st, r.ttl)

	return st
}

// Peek возвращает состояние без создания и продления.
func (r *Registry) Peek(userID string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.states.Peek(userID)
}

// Drop удаляет состояние пользователя.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states.Invalidate(userID)
}

// Len — число активных состояний.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.states.Len()
}
