package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MeKo-Tech/huequiz/internal/quiz"
)

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many active sessions")
)

// entry guards one session; quiz.Session itself is not safe for concurrent use.
type entry struct {
	mu       sync.Mutex
	id       string
	player   string
	sess     *quiz.Session
	lastSeen time.Time
	recorded bool
}

// registry holds live sessions in memory.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	limit    int
	now      func() time.Time
}

func newRegistry(ttl time.Duration, limit int, now func() time.Time) *registry {
	return &registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		limit:    limit,
		now:      now,
	}
}

// add stores a session under a fresh id, evicting idle sessions first.
func (r *registry) add(player string, s *quiz.Session) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	if r.limit > 0 && len(r.sessions) >= r.limit {
		return nil, errTooManySessions
	}

	e := &entry{
		id:       uuid.NewString(),
		player:   player,
		sess:     s,
		lastSeen: r.now(),
	}
	r.sessions[e.id] = e
	return e, nil
}

func (r *registry) get(id string) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	e.lastSeen = r.now()
	return e, nil
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep drops sessions idle for longer than the TTL and returns how many.
func (r *registry) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *registry) sweepLocked() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
