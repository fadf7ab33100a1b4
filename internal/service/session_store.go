package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

const sessionKeyPrefix = "session:"

// CacheSessionStore keeps browse sessions in the shared cache.
type CacheSessionStore struct {
	cache *CacheService
	ttl   time.Duration
}

// NewCacheSessionStore builds a cache backed session store.
func NewCacheSessionStore(cache *CacheService, ttl time.Duration) *CacheSessionStore {
	return &CacheSessionStore{cache: cache, ttl: ttl}
}

// Load fetches a session by id.
func (s *CacheSessionStore) Load(ctx context.Context, id string) (*models.BrowseSession, error) {
	var session models.BrowseSession
	hit, err := s.cache.Get(ctx, sessionKeyPrefix+id, &session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if !hit {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return &session, nil
}

// Save writes a session and refreshes its TTL.
func (s *CacheSessionStore) Save(ctx context.Context, session *models.BrowseSession) error {
	if err := s.cache.Set(ctx, sessionKeyPrefix+session.ID, session, s.ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session")
	}
	return nil
}

// MemorySessionStore keeps browse sessions in process memory. Expired
// sessions are dropped on access.
type MemorySessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	session   models.BrowseSession
	expiresAt time.Time
}

// NewMemorySessionStore builds an in-process session store.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &MemorySessionStore{ttl: ttl, now: time.Now, sessions: make(map[string]memorySession)}
}

// Load fetches a session by id.
func (s *MemorySessionStore) Load(_ context.Context, id string) (*models.BrowseSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	session := entry.session
	session.Filters = session.Filters.WithStyles(session.Filters.Styles)
	return &session, nil
}

// Save writes a session and refreshes its TTL.
func (s *MemorySessionStore) Save(_ context.Context, session *models.BrowseSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	stored := *session
	stored.Filters = stored.Filters.WithStyles(stored.Filters.Styles)
	s.sessions[session.ID] = memorySession{session: stored, expiresAt: now.Add(s.ttl)}
	return nil
}
