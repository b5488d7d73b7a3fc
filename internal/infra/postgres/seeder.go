package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"chaining-quiz-service/internal/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type quizItemRow struct {
	bun.BaseModel `bun:"table:quiz_items"`

	ID       string   `bun:"id,pk"`
	Language string   `bun:"language,notnull"`
	Level    int      `bun:"level,notnull"`
	Type     string   `bun:"type,notnull"`
	Problem  string   `bun:"problem,notnull"`
	Options  []string `bun:"options,type:jsonb,notnull"`
	Answer   string   `bun:"answer,notnull"`
}

// OpenBun opens a bun handle over the pgdriver connector.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Seeder writes quiz pools into quiz_items.
type Seeder struct {
	db *bun.DB
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedPool upserts items for a language. With replace set, items of that
// language not present in the new pool are removed.
func (s *Seeder) SeedPool(ctx context.Context, language string, items []domain.QuizItem, replace bool) (int, error) {
	rows := make([]quizItemRow, 0, len(items))
	for _, item := range items {
		options := item.Options
		if options == nil {
			options = []string{}
		}
		rows = append(rows, quizItemRow{
			ID:       item.ID,
			Language: language,
			Level:    item.Level,
			Type:     string(item.Type),
			Problem:  item.Problem,
			Options:  options,
			Answer:   item.Answer,
		})
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if replace {
			if _, err := tx.NewDelete().Model((*quizItemRow)(nil)).Where("language = ?", language).Exec(ctx); err != nil {
				return fmt.Errorf("clear pool: %w", err)
			}
		}
		if len(rows) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&rows).
			On("CONFLICT (id) DO UPDATE").
			Set("language = EXCLUDED.language").
			Set("level = EXCLUDED.level").
			Set("type = EXCLUDED.type").
			Set("problem = EXCLUDED.problem").
			Set("options = EXCLUDED.options").
			Set("answer = EXCLUDED.answer").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert pool: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
