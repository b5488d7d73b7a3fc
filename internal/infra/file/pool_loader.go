package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"chaining-quiz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// extensions are tried in order when resolving <dir>/<language>.<ext>.
var extensions = []string{".yaml", ".yml", ".json"}

// poolDocument is the on-disk layout of a pool file. JSON files parse
// through the same YAML decoder.
type poolDocument struct {
	Language string            `yaml:"language"`
	Items    []domain.QuizItem `yaml:"items"`
}

// PoolLoader reads quiz pools from a directory of per-language files.
type PoolLoader struct {
	dir string
}

func NewPoolLoader(dir string) *PoolLoader {
	return &PoolLoader{dir: dir}
}

func (l *PoolLoader) LoadPool(_ context.Context, language string) ([]domain.QuizItem, error) {
	for _, ext := range extensions {
		path := filepath.Join(l.dir, language+ext)
		items, err := ReadPool(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return items, err
	}
	return nil, domain.ErrPoolNotFound
}

// ReadPool parses and validates a single pool file.
func ReadPool(path string) ([]domain.QuizItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePool(data)
}

// ParsePool accepts either a bare list of items or a document with an
// "items" key. Every item must pass domain validation.
func ParsePool(data []byte) ([]domain.QuizItem, error) {
	var items []domain.QuizItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		var doc poolDocument
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("parse pool: %w", docErr)
		}
		items = doc.Items
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidItem, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return items, nil
}

// ReadAnswers parses an answer record file (id: answer).
func ReadAnswers(path string) (domain.AnswerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	answers := domain.AnswerRecord{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return answers, nil
}
