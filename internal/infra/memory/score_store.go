package memory

import (
	"context"
	"sync"

	"chaining-quiz-service/internal/domain"
)

// ScoreStore keeps placements in memory. Later saves for the same
// language and user replace earlier ones.
type ScoreStore struct {
	mu         sync.RWMutex
	placements map[scoreKey]domain.Placement
}

type scoreKey struct {
	language string
	userID   string
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{placements: make(map[scoreKey]domain.Placement)}
}

func (s *ScoreStore) SaveScore(_ context.Context, placement domain.Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placements[scoreKey{placement.Language, placement.UserID}] = placement
	return nil
}

func (s *ScoreStore) GetScore(_ context.Context, language, userID string) (domain.Placement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	placement, ok := s.placements[scoreKey{language, userID}]
	if !ok {
		return domain.Placement{}, domain.ErrPlacementNotFound
	}
	return placement, nil
}
