package memory

import (
	"time"

	"grant-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions in process memory with the given
// idle TTL. Expired sessions are purged every 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// Touch records a query against the session, creating it on first use.
// Saving resets the idle TTL.
func (r *SessionRepository) Touch(sessionID, query string) *store.Session {
	session, found := r.Get(sessionID)
	if !found {
		session = &store.Session{
			ID:        sessionID,
			CreatedAt: time.Now(),
		}
	}
	session.LastQuery = query
	session.QueryCount++
	r.Save(session)
	return session
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
