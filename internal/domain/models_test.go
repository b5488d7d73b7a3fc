package domain

import (
	"errors"
	"testing"
)

func TestQuizItemValidate(t *testing.T) {
	for _, item := range []QuizItem{
		{ID: "a", Level: 5, Type: FillInTheBlank, Options: []string{"x", "y"}, Answer: "x"},
		{ID: "b", Level: 1, Type: MultipleChoice, Options: []string{"Hello"}, Answer: "Hello"},
		{ID: "c", Level: 2, Type: SentenceOrder, Answer: "cat dog"},
	} {
		if err := item.Validate(); err != nil {
			t.Fatalf("expected valid item %s, got %v", item.ID, err)
		}
	}

	for _, item := range []QuizItem{
		{Level: 1, Type: MultipleChoice, Options: []string{"x"}, Answer: "x"},
		{ID: "a", Level: 0, Type: MultipleChoice, Options: []string{"x"}, Answer: "x"},
		{ID: "a", Level: 1, Type: "ESSAY", Answer: "x"},
		{ID: "a", Level: 1, Type: MultipleChoice, Answer: "Hello"},
		{ID: "a", Level: 1, Type: FillInTheBlank, Answer: "is"},
		{ID: "a", Level: 1, Type: MultipleChoice, Options: []string{"Chair", "Blue"}, Answer: "Hello"},
		{ID: "a", Level: 1, Type: FillInTheBlank, Options: []string{"is", "are"}, Answer: "Is"},
		{ID: "a", Level: 1, Type: SentenceOrder, Answer: ""},
		{ID: "a", Level: 1, Type: MultipleChoice, Options: []string{"", "x"}, Answer: ""},
	} {
		if err := item.Validate(); !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("expected invalid item for %+v, got %v", item, err)
		}
	}
}

func TestQuizItemWords(t *testing.T) {
	item := QuizItem{Answer: "where is the station"}
	words := item.Words()
	if len(words) != 4 || words[0] != "where" || words[3] != "station" {
		t.Fatalf("unexpected words: %v", words)
	}
	if (QuizItem{}).Words() != nil {
		t.Fatalf("expected no words for empty answer")
	}
}

func TestQuizSetMaxScore(t *testing.T) {
	set := QuizSet{{Level: 1}, {Level: 4}, {Level: 5}}
	if got := set.MaxScore(); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}
