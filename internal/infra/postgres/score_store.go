package postgres

import (
	"context"
	"errors"
	"fmt"

	"chaining-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScoreStore keeps the latest placement per (language, user) in Postgres.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

func (s *ScoreStore) SaveScore(ctx context.Context, placement domain.Placement) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO placement_scores (language, user_id, total_score, level, completed_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (language, user_id) DO UPDATE
SET total_score = EXCLUDED.total_score, level = EXCLUDED.level, completed_at = EXCLUDED.completed_at`,
		placement.Language, placement.UserID, placement.Result.TotalScore, placement.Result.Level, placement.CompletedAt)
	if err != nil {
		return fmt.Errorf("save placement: %w", err)
	}
	return nil
}

func (s *ScoreStore) GetScore(ctx context.Context, language, userID string) (domain.Placement, error) {
	p := domain.Placement{Language: language, UserID: userID}
	err := s.pool.QueryRow(ctx,
		`SELECT total_score, level, completed_at FROM placement_scores WHERE language=$1 AND user_id=$2`,
		language, userID,
	).Scan(&p.Result.TotalScore, &p.Result.Level, &p.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Placement{}, domain.ErrPlacementNotFound
	}
	if err != nil {
		return domain.Placement{}, fmt.Errorf("load placement: %w", err)
	}
	return p, nil
}
