package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAudioFilename(t *testing.T) {
	assert.True(t, ValidateAudioFilename("recording.wav"))
	assert.True(t, ValidateAudioFilename("voice.MP3"))
	assert.True(t, ValidateAudioFilename("clip.flac"))
	assert.False(t, ValidateAudioFilename("notes.txt"))
	assert.False(t, ValidateAudioFilename("archive.zip"))
	assert.False(t, ValidateAudioFilename("noextension"))
}

func TestScoreSpeechPerfectMatch(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})
	quality := AudioQuality{ClarityScore: 0.9}

	got := engine.ScoreSpeech("hello how are you", "Hello, how are you?", quality)
	assert.Equal(t, 1.0, got.SimilarityScore)
	assert.InDelta(t, 90.0, got.PronunciationScore, 0.2)
	assert.Equal(t, 100.0, got.AccuracyScore)
}

func TestScoreSpeechPartialMatch(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})
	quality := AudioQuality{ClarityScore: 0.8}

	got := engine.ScoreSpeech("hello you", "hello how are you", quality)
	assert.Less(t, got.SimilarityScore, 1.0)
	assert.Greater(t, got.SimilarityScore, 0.0)
	assert.Less(t, got.OverallScore, 80.0)
}

func TestScoreSpeechNearMissWordGetsPartialCredit(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})
	quality := AudioQuality{ClarityScore: 0.9}

	// "helo" shares no word with "hello", so the word comparison alone
	// would score zero; edit distance keeps some credit.
	got := engine.ScoreSpeech("helo", "hello", quality)
	assert.Equal(t, 0.0, got.AccuracyScore)
	assert.Greater(t, got.SimilarityScore, 0.0)
	assert.Greater(t, got.PronunciationScore, 0.0)
	assert.Less(t, got.PronunciationScore, 50.0)
}

func TestScoreSpeechZeroClarityFallsBack(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	got := engine.ScoreSpeech("hello", "hello", AudioQuality{})
	assert.Equal(t, 0.8, got.QualityModifier)
}

func TestScoreSpeechFluencyCappedAtHundred(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})
	quality := AudioQuality{ClarityScore: 0.95}

	got := engine.ScoreSpeech("good morning", "good morning", quality)
	assert.LessOrEqual(t, got.FluencyScore, 100.0)
}

func TestImprovementSuggestionsBands(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	low := engine.ImprovementSuggestions(SpeechScores{OverallScore: 30}, "a", "b")
	assert.Contains(t, low, "Practice speaking more slowly and clearly")

	mid := engine.ImprovementSuggestions(SpeechScores{OverallScore: 60}, "a", "b")
	assert.Contains(t, mid, "Work on connecting words smoothly")

	high := engine.ImprovementSuggestions(SpeechScores{OverallScore: 95}, "same", "same")
	assert.Contains(t, high, "Excellent pronunciation! Try more challenging content")
}

func TestImprovementSuggestionsFlagMismatch(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	got := engine.ImprovementSuggestions(SpeechScores{OverallScore: 95}, "hello world", "hello word")
	assert.Contains(t, got, "Pay attention to word endings and consonant sounds")
}

func TestAssessAudioQualityDeterministic(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	first := engine.AssessAudioQuality("uploads/a.wav")
	second := engine.AssessAudioQuality("uploads/a.wav")
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.ClarityScore, 0.75)
	assert.LessOrEqual(t, first.ClarityScore, 0.95)
}

func TestAnalyzePronunciationDeterministic(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	first := engine.AnalyzePronunciation("the quick brown fox", "pt")
	second := engine.AnalyzePronunciation("the quick brown fox", "pt")
	assert.Equal(t, first, second)

	assert.Len(t, first.WordScores, 4)
	assert.Equal(t, hardSoundsByNative["pt"], first.ProblematicSounds)
	for _, score := range first.WordScores {
		assert.GreaterOrEqual(t, score, 70.0)
		assert.LessOrEqual(t, score, 95.0)
	}
}

func TestAnalyzePronunciationUnknownNative(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	got := engine.AnalyzePronunciation("hello there", "de")
	assert.Equal(t, []string{"consonant clusters", "word stress", "linking"}, got.ProblematicSounds)
}

func TestSpeakingMetricsFromTimestamps(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	// Five words over two seconds is 150 wpm.
	transcription := Transcription{
		Confidence: 0.95,
		Words: []WordTimestamp{
			{Word: "the", Start: 0, End: 0.4},
			{Word: "weather", Start: 0.4, End: 0.8},
			{Word: "is", Start: 0.8, End: 1.2},
			{Word: "nice", Start: 1.2, End: 1.6},
			{Word: "today", Start: 1.6, End: 2.0},
		},
	}

	got := engine.SpeakingMetricsFor(transcription)
	assert.Equal(t, 150.0, got.WordsPerMinute)
	assert.Equal(t, "optimal", got.PauseFrequency)
	assert.Equal(t, "excellent", got.SpeechClarity)
}

func TestSpeakingMetricsDefaultsWithoutTimestamps(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	got := engine.SpeakingMetricsFor(Transcription{Confidence: 0.86})
	assert.Equal(t, 150.0, got.WordsPerMinute)
	assert.Equal(t, "good", got.SpeechClarity)
}

func TestTranscriptionSuggestionsByPace(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	fast := engine.TranscriptionSuggestions(SpeakingMetrics{PauseFrequency: "too_few"})
	assert.Contains(t, fast, "Slow down and pause between phrases")

	slow := engine.TranscriptionSuggestions(SpeakingMetrics{PauseFrequency: "frequent"})
	assert.Contains(t, slow, "Work on keeping a steadier pace")

	clear := engine.TranscriptionSuggestions(SpeakingMetrics{PauseFrequency: "optimal", SpeechClarity: "excellent"})
	assert.Contains(t, clear, "Good pace and rhythm")
	assert.Contains(t, clear, "Excellent clarity in your speech")
}

func TestLiveFeedbackEmptyChunk(t *testing.T) {
	engine := NewSpeechEngine(&SimulatedTranscriber{})

	got := engine.LiveFeedback(0)
	assert.Equal(t, "needs_clarity", got.ClarityStatus)

	got = engine.LiveFeedback(4096)
	assert.Equal(t, "clear", got.ClarityStatus)
	assert.NotEmpty(t, got.Encouragement)
}

func TestFeedbackHeadlineBands(t *testing.T) {
	assert.Equal(t, "Excellent! Your pronunciation is spot on!", FeedbackHeadline(95))
	assert.Equal(t, "Great job! Minor improvements needed.", FeedbackHeadline(85))
	assert.Equal(t, "Good effort! Let's work on clarity.", FeedbackHeadline(70))
	assert.Equal(t, "Keep practicing! Try speaking slowly and clearly.", FeedbackHeadline(40))
}
