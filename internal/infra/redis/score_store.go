package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"chaining-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ScoreStore persists placements as hashes:
// HSET placement:{language}:{userID} total {n} level {n} completed {unix}
type ScoreStore struct {
	client *redis.Client
}

func NewScoreStore(client *redis.Client) *ScoreStore {
	return &ScoreStore{client: client}
}

func (s *ScoreStore) SaveScore(ctx context.Context, placement domain.Placement) error {
	err := s.client.HSet(ctx, s.key(placement.Language, placement.UserID),
		"total", placement.Result.TotalScore,
		"level", placement.Result.Level,
		"completed", placement.CompletedAt.Unix(),
	).Err()
	if err != nil {
		return fmt.Errorf("save placement: %w", err)
	}
	return nil
}

func (s *ScoreStore) GetScore(ctx context.Context, language, userID string) (domain.Placement, error) {
	fields, err := s.client.HGetAll(ctx, s.key(language, userID)).Result()
	if err != nil {
		return domain.Placement{}, fmt.Errorf("load placement: %w", err)
	}
	if len(fields) == 0 {
		return domain.Placement{}, domain.ErrPlacementNotFound
	}

	total, err := strconv.Atoi(fields["total"])
	if err != nil {
		return domain.Placement{}, fmt.Errorf("decode placement total: %w", err)
	}
	level, err := strconv.Atoi(fields["level"])
	if err != nil {
		return domain.Placement{}, fmt.Errorf("decode placement level: %w", err)
	}
	completed, err := strconv.ParseInt(fields["completed"], 10, 64)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("decode placement completed: %w", err)
	}
	return domain.Placement{
		Language:    language,
		UserID:      userID,
		Result:      domain.ScoreResult{TotalScore: total, Level: level},
		CompletedAt: time.Unix(completed, 0).UTC(),
	}, nil
}

func (s *ScoreStore) key(language, userID string) string {
	return "placement:" + language + ":" + userID
}
