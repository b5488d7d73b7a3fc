package placement

import (
	"math/rand"
	"time"

	"chaining-quiz-service/internal/domain"
)

// NewRand returns a random source for selection and shuffling.
// A zero seed is replaced by the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SelectQuizSet picks one item per (level, type) slot, levels ascending and
// types in domain.QuizTypes order. Slots without candidates are skipped.
func SelectQuizSet(pool []domain.QuizItem, rnd *rand.Rand) domain.QuizSet {
	set := make(domain.QuizSet, 0, (domain.MaxLevel-domain.MinLevel+1)*len(domain.QuizTypes))
	for level := domain.MinLevel; level <= domain.MaxLevel; level++ {
		for _, typ := range domain.QuizTypes {
			candidates := filterPool(pool, level, typ)
			if len(candidates) == 0 {
				continue
			}
			set = append(set, candidates[rnd.Intn(len(candidates))])
		}
	}
	return set
}

func filterPool(pool []domain.QuizItem, level int, typ domain.QuizType) []domain.QuizItem {
	var out []domain.QuizItem
	for _, item := range pool {
		if item.Level == level && item.Type == typ {
			out = append(out, item)
		}
	}
	return out
}
