package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// memoryStore is an in-memory Store for tests and local development.
// The mutex makes IncrementUsage an atomic read-modify-write, matching
// the guarantee the database-backed stores get from $inc / SET x = x + n.
type memoryStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
}

// NewMemoryStore creates an empty in-memory subscription store.
func NewMemoryStore() Store {
	return &memoryStore{subs: make(map[uuid.UUID]*Subscription)}
}

func (s *memoryStore) Get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *memoryStore) Create(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[sub.UserID]; ok {
		return ErrAlreadyExists
	}
	cp := *sub
	s.subs[sub.UserID] = &cp
	return nil
}

func (s *memoryStore) Update(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.subs[sub.UserID]
	if !ok {
		return ErrNotFound
	}

	cp := *sub
	// Counters are owned by IncrementUsage / ResetMonthlyUsage; keep the
	// stored values so a stale snapshot in sub cannot roll them back.
	cp.CurrentUsage = existing.CurrentUsage
	s.subs[sub.UserID] = &cp
	return nil
}

func (s *memoryStore) IncrementUsage(ctx context.Context, userID uuid.UUID, f plan.Feature, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[userID]
	if !ok {
		return 0, ErrNotFound
	}

	switch f {
	case plan.FeatureLeads:
		sub.CurrentUsage.LeadsCount += delta
		return sub.CurrentUsage.LeadsCount, nil
	case plan.FeatureCompetitors:
		sub.CurrentUsage.CompetitorsCount += delta
		return sub.CurrentUsage.CompetitorsCount, nil
	case plan.FeatureAI:
		sub.CurrentUsage.AIRequestsThisMonth += delta
		return sub.CurrentUsage.AIRequestsThisMonth, nil
	case plan.FeatureScraping:
		sub.CurrentUsage.ScrapingRequestsThisMonth += delta
		return sub.CurrentUsage.ScrapingRequestsThisMonth, nil
	}
	return 0, ErrNotMetered
}

func (s *memoryStore) ResetMonthlyUsage(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		sub.CurrentUsage.AIRequestsThisMonth = 0
		sub.CurrentUsage.ScrapingRequestsThisMonth = 0
	}
	return int64(len(s.subs)), nil
}
