package services

import "bilingui/backend/utils"

// AnswerFeedback grades a free-text answer against the expected one.
type AnswerFeedback struct {
	Correct bool    `json:"correct"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

// EvaluateAnswer compares normalized texts. A wrong answer still earns half
// credit for the attempt and gets a hint built from the expected answer.
func EvaluateAnswer(given, expected string) AnswerFeedback {
	if utils.NormalizeText(given) == utils.NormalizeText(expected) {
		return AnswerFeedback{
			Correct: true,
			Score:   100,
			Message: "Correct! Well done.",
		}
	}

	hint := expected
	if runes := []rune(expected); len(runes) > 2 {
		hint = string(runes[:2]) + "..."
	}
	return AnswerFeedback{
		Correct: false,
		Score:   50,
		Message: "Not quite. Hint: the answer starts with '" + hint + "'",
	}
}
