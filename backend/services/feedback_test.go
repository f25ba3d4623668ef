package services

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAnswerCorrect(t *testing.T) {
	got := EvaluateAnswer("The cat is black", "the cat is black!")
	assert.True(t, got.Correct)
	assert.Equal(t, 100.0, got.Score)
	assert.Equal(t, "Correct! Well done.", got.Message)
}

func TestEvaluateAnswerWrongGetsHint(t *testing.T) {
	got := EvaluateAnswer("the dog is black", "the cat is black")
	assert.False(t, got.Correct)
	assert.Equal(t, 50.0, got.Score)
	assert.Contains(t, got.Message, "th...")
}

func TestEvaluateAnswerHintKeepsMultibyteRunes(t *testing.T) {
	got := EvaluateAnswer("wrong", "tão rápido")
	assert.False(t, got.Correct)
	assert.Contains(t, got.Message, "'tã...'")
	assert.True(t, utf8.ValidString(got.Message))
}

func TestEvaluateAnswerShortExpected(t *testing.T) {
	got := EvaluateAnswer("no", "si")
	assert.False(t, got.Correct)
	assert.Contains(t, got.Message, "'si'")
}
