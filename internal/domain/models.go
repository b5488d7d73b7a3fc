package domain

import (
	"fmt"
	"strings"
	"time"
)

// QuizType is the interaction style of a quiz item.
type QuizType string

const (
	SentenceOrder  QuizType = "SENTENCE_ORDER"
	MultipleChoice QuizType = "MULTIPLE_CHOICE"
	FillInTheBlank QuizType = "FILL_IN_THE_BLANK"
)

// QuizTypes is the fixed order in which types are visited during selection.
var QuizTypes = []QuizType{SentenceOrder, MultipleChoice, FillInTheBlank}

// Valid reports whether t is one of the known quiz types.
func (t QuizType) Valid() bool {
	switch t {
	case SentenceOrder, MultipleChoice, FillInTheBlank:
		return true
	}
	return false
}

const (
	MinLevel = 1
	MaxLevel = 5
)

// BlankMarker is the token a FILL_IN_THE_BLANK problem uses for the gap.
const BlankMarker = "___"

// QuizItem is a single placement question. Items are immutable once loaded.
type QuizItem struct {
	ID      string   `json:"id" yaml:"id"`
	Level   int      `json:"level" yaml:"level"`
	Type    QuizType `json:"type" yaml:"type"`
	Problem string   `json:"problem" yaml:"problem"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Answer  string   `json:"answer" yaml:"answer"`
}

// Words splits the canonical answer into the sentence-order word bank.
func (q QuizItem) Words() []string {
	if q.Answer == "" {
		return nil
	}
	return strings.Split(q.Answer, " ")
}

// Validate checks the fields the engine relies on.
func (q QuizItem) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	}
	if q.Level < MinLevel || q.Level > MaxLevel {
		return fmt.Errorf("%w: item %s has level %d", ErrInvalidItem, q.ID, q.Level)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("%w: item %s has type %q", ErrInvalidItem, q.ID, q.Type)
	}
	if q.Answer == "" {
		return fmt.Errorf("%w: item %s has no answer", ErrInvalidItem, q.ID)
	}
	if q.Type == SentenceOrder {
		return nil
	}
	// Choice items must offer their own answer, or Select can never succeed.
	for _, option := range q.Options {
		if option == q.Answer {
			return nil
		}
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: item %s has no options", ErrInvalidItem, q.ID)
	}
	return fmt.Errorf("%w: item %s answer is not among its options", ErrInvalidItem, q.ID)
}

// QuizSet is the ordered selection presented in one play-through.
type QuizSet []QuizItem

// MaxScore is the total a perfect play-through of the set would earn.
func (s QuizSet) MaxScore() int {
	total := 0
	for _, item := range s {
		total += item.Level
	}
	return total
}

// AnswerRecord maps quiz item IDs to the answer the user submitted.
type AnswerRecord map[string]string

// ScoreResult is the outcome of a finished play-through.
type ScoreResult struct {
	TotalScore int `json:"totalScore"`
	Level      int `json:"level"`
}

// Placement is a stored score for one user in one language.
type Placement struct {
	Language    string      `json:"language"`
	UserID      string      `json:"userId"`
	Result      ScoreResult `json:"result"`
	CompletedAt time.Time   `json:"completedAt"`
}
