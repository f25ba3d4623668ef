package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscribeEchoesTargetPhrase(t *testing.T) {
	tr := &SimulatedTranscriber{TargetPhrase: "I would like a coffee"}

	got, err := tr.Transcribe(context.Background(), "uploads/x.wav", "en")
	assert.NoError(t, err)
	assert.Equal(t, "I would like a coffee", got.Text)
	assert.Equal(t, "en", got.LanguageDetected)
	assert.Len(t, got.Words, 5)
}

func TestTranscribeDeterministicPerPath(t *testing.T) {
	tr := &SimulatedTranscriber{}

	first, err := tr.Transcribe(context.Background(), "uploads/sample.wav", "en")
	assert.NoError(t, err)
	second, err := tr.Transcribe(context.Background(), "uploads/sample.wav", "en")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, cannedTranscripts, first.Text)
}

func TestTranscribeConfidenceRange(t *testing.T) {
	tr := &SimulatedTranscriber{}

	got, err := tr.Transcribe(context.Background(), "uploads/other.mp3", "pt")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, got.Confidence, 0.85)
	assert.LessOrEqual(t, got.Confidence, 0.98)
}

func TestTranscribeCancelledContext(t *testing.T) {
	tr := &SimulatedTranscriber{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Transcribe(ctx, "uploads/x.wav", "en")
	assert.Error(t, err)
}

func TestWordTimestampsAreOrdered(t *testing.T) {
	tr := &SimulatedTranscriber{TargetPhrase: "the weather is nice today"}

	got, err := tr.Transcribe(context.Background(), "uploads/y.wav", "en")
	assert.NoError(t, err)

	prevEnd := 0.0
	for _, w := range got.Words {
		assert.Equal(t, prevEnd, w.Start)
		assert.Greater(t, w.End, w.Start)
		prevEnd = w.End
	}
}
