package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"chaining-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PoolLoader loads a language's quiz items from Postgres.
type PoolLoader struct {
	pool *pgxpool.Pool
}

func NewPoolLoader(pool *pgxpool.Pool) *PoolLoader {
	return &PoolLoader{pool: pool}
}

func (l *PoolLoader) LoadPool(ctx context.Context, language string) ([]domain.QuizItem, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, level, type, problem, options, answer FROM quiz_items WHERE language=$1 ORDER BY level, type, id`,
		language)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	defer rows.Close()

	var items []domain.QuizItem
	for rows.Next() {
		var (
			item    domain.QuizItem
			typ     string
			options []byte
		)
		if err := rows.Scan(&item.ID, &item.Level, &typ, &item.Problem, &options, &item.Answer); err != nil {
			return nil, fmt.Errorf("scan quiz item: %w", err)
		}
		item.Type = domain.QuizType(typ)
		if len(options) > 0 {
			if err := json.Unmarshal(options, &item.Options); err != nil {
				return nil, fmt.Errorf("unmarshal options of %s: %w", item.ID, err)
			}
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrPoolNotFound
	}
	return items, nil
}
