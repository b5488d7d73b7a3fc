package placement

import "chaining-quiz-service/internal/domain"

// scoreBands maps the inclusive upper bound of each total-score band to its level.
var scoreBands = []struct {
	max   int
	level int
}{
	{4, 0},
	{8, 1},
	{12, 2},
	{16, 3},
	{20, 4},
	{25, 5},
	{30, 6},
	{35, 7},
	{40, 8},
	{44, 9},
	{45, 10},
}

// ComputeScore awards each item's level when the recorded answer matches the
// canonical answer exactly. Unanswered items earn nothing.
func ComputeScore(set domain.QuizSet, answers domain.AnswerRecord) domain.ScoreResult {
	total := 0
	for _, item := range set {
		if answer, ok := answers[item.ID]; ok && answer == item.Answer {
			total += item.Level
		}
	}
	return domain.ScoreResult{TotalScore: total, Level: LevelForScore(total)}
}

// LevelForScore converts a total score into a proficiency level 0..10.
// Totals outside 0..45 fall back to 0.
func LevelForScore(total int) int {
	if total < 0 {
		return 0
	}
	for _, band := range scoreBands {
		if total <= band.max {
			return band.level
		}
	}
	return 0
}
