package placement

import (
	"fmt"

	"chaining-quiz-service/internal/domain"
)

// fullPool returns `per` items for every (level, type) slot.
func fullPool(per int) []domain.QuizItem {
	var pool []domain.QuizItem
	for level := domain.MinLevel; level <= domain.MaxLevel; level++ {
		for _, typ := range domain.QuizTypes {
			for n := 0; n < per; n++ {
				pool = append(pool, sampleItem(fmt.Sprintf("%s-%d-%d", typ, level, n), level, typ))
			}
		}
	}
	return pool
}

func sampleItem(id string, level int, typ domain.QuizType) domain.QuizItem {
	switch typ {
	case domain.SentenceOrder:
		return domain.QuizItem{ID: id, Level: level, Type: typ, Problem: "Order the words", Answer: "I am going home"}
	case domain.FillInTheBlank:
		return domain.QuizItem{ID: id, Level: level, Type: typ, Problem: "She " + domain.BlankMarker + " tea.", Options: []string{"drink", "drinks", "drank"}, Answer: "drinks"}
	default:
		return domain.QuizItem{ID: id, Level: level, Type: typ, Problem: "Pick the greeting", Options: []string{"Hello", "Chair", "Blue"}, Answer: "Hello"}
	}
}
