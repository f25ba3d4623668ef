package services

import (
	"math/rand"
	"path/filepath"
	"strings"

	"bilingui/backend/utils"
)

// SpeechEngine scores spoken practice against target phrases. The scoring is
// text comparison plus fixed heuristics; audio itself is never decoded.
type SpeechEngine struct {
	Transcriber Transcriber
}

func NewSpeechEngine(t Transcriber) *SpeechEngine {
	return &SpeechEngine{Transcriber: t}
}

var allowedAudioExtensions = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true,
	".ogg": true, ".flac": true, ".aac": true,
}

// ValidateAudioFilename checks the extension against the supported formats.
func ValidateAudioFilename(filename string) bool {
	return allowedAudioExtensions[strings.ToLower(filepath.Ext(filename))]
}

// AudioQuality is a simulated quality assessment of an uploaded file.
type AudioQuality struct {
	VolumeLevel     string  `json:"volume_level"`
	BackgroundNoise string  `json:"background_noise"`
	ClarityScore    float64 `json:"clarity_score"`
	SampleRate      string  `json:"sample_rate"`
	QualityRating   string  `json:"quality_rating"`
}

func (e *SpeechEngine) AssessAudioQuality(audioPath string) AudioQuality {
	rng := rand.New(rand.NewSource(int64(pathSeed(audioPath))))
	clarity := 0.75 + rng.Float64()*0.2

	rating := "good"
	if clarity > 0.88 {
		rating = "excellent"
	}

	return AudioQuality{
		VolumeLevel:     "optimal",
		BackgroundNoise: "minimal",
		ClarityScore:    clarity,
		SampleRate:      "44.1kHz",
		QualityRating:   rating,
	}
}

// SpeechScores is the banded score set produced for a submission.
type SpeechScores struct {
	OverallScore       float64 `json:"overall_score"`
	PronunciationScore float64 `json:"pronunciation_score"`
	FluencyScore       float64 `json:"fluency_score"`
	AccuracyScore      float64 `json:"accuracy_score"`
	SimilarityScore    float64 `json:"similarity_score"`
	QualityModifier    float64 `json:"quality_modifier"`
}

// ScoreSpeech compares a transcription against the target phrase, weighting
// the blended similarity by audio clarity. Word-set similarity dominates;
// the character-level term gives partial credit for near-miss words that the
// word comparison scores as zero.
func (e *SpeechEngine) ScoreSpeech(transcription, targetText string, quality AudioQuality) SpeechScores {
	wordSim := utils.SimilarityScore(transcription, targetText)
	similarity := wordSim*0.7 + charSimilarity(transcription, targetText)*0.3
	modifier := quality.ClarityScore
	if modifier == 0 {
		modifier = 0.8
	}

	pronunciation := similarity * modifier * 100
	fluency := pronunciation + modifier*10
	if fluency > 100 {
		fluency = 100
	}

	return SpeechScores{
		OverallScore:       round1(pronunciation),
		PronunciationScore: round1(pronunciation),
		FluencyScore:       round1(fluency),
		AccuracyScore:      round1(wordSim * 100),
		SimilarityScore:    round3(similarity),
		QualityModifier:    round3(modifier),
	}
}

// charSimilarity is edit distance over the normalized texts, scaled to [0,1].
func charSimilarity(a, b string) float64 {
	na, nb := utils.NormalizeText(a), utils.NormalizeText(b)
	if na == "" && nb == "" {
		return 1.0
	}

	longest := len([]rune(na))
	if l := len([]rune(nb)); l > longest {
		longest = l
	}

	sim := 1 - float64(utils.LevenshteinDistance(na, nb))/float64(longest)
	if sim < 0 {
		sim = 0
	}
	return sim
}

func round1(f float64) float64 { return float64(int(f*10+0.5)) / 10 }
func round3(f float64) float64 { return float64(int(f*1000+0.5)) / 1000 }

// ImprovementSuggestions returns coaching lines for the score band.
func (e *SpeechEngine) ImprovementSuggestions(scores SpeechScores, transcription, targetText string) []string {
	var suggestions []string

	switch overall := scores.OverallScore; {
	case overall < 50:
		suggestions = append(suggestions,
			"Practice speaking more slowly and clearly",
			"Focus on pronouncing each word distinctly",
			"Try breaking down difficult words into syllables",
		)
	case overall < 70:
		suggestions = append(suggestions,
			"Work on connecting words smoothly",
			"Practice the rhythm and flow of sentences",
			"Pay attention to stress patterns in words",
		)
	case overall < 85:
		suggestions = append(suggestions,
			"Focus on intonation and natural speech patterns",
			"Practice with longer, more complex sentences",
			"Try speaking with more confidence",
		)
	default:
		suggestions = append(suggestions,
			"Excellent pronunciation! Try more challenging content",
			"Practice with native-speed conversations",
		)
	}

	if utils.NormalizeText(transcription) != utils.NormalizeText(targetText) {
		suggestions = append(suggestions, "Pay attention to word endings and consonant sounds")
	}

	return suggestions
}

// PronunciationAnalysis is the detailed (simulated) per-word breakdown.
type PronunciationAnalysis struct {
	OverallScore      float64            `json:"overall_score"`
	WordScores        map[string]float64 `json:"word_scores"`
	ProblematicSounds []string           `json:"problematic_sounds"`
	StressPattern     string             `json:"stress_pattern"`
	RhythmScore       float64            `json:"rhythm_score"`
	IntonationScore   float64            `json:"intonation_score"`
	WordsPerMinute    float64            `json:"words_per_minute"`
	PaceRating        string             `json:"pace_rating"`
	Suggestions       []string           `json:"improvement_suggestions"`
}

var hardSoundsByNative = map[string][]string{
	"pt": {"th", "r", "ed endings", "final consonants"},
	"es": {"b/v", "h", "short vowels"},
	"fr": {"th", "h", "word stress"},
}

// AnalyzePronunciation fabricates a per-word score table seeded by the
// target text so the same phrase always yields the same report.
func (e *SpeechEngine) AnalyzePronunciation(targetText, nativeLanguage string) PronunciationAnalysis {
	rng := rand.New(rand.NewSource(int64(pathSeed(targetText))))

	words := strings.Fields(utils.NormalizeText(targetText))
	wordScores := make(map[string]float64, len(words))
	sum := 0.0
	for _, w := range words {
		score := 70 + rng.Float64()*25
		wordScores[w] = round1(score)
		sum += score
	}

	overall := 80.0
	if len(words) > 0 {
		overall = sum / float64(len(words))
	}

	sounds := hardSoundsByNative[nativeLanguage]
	if sounds == nil {
		sounds = []string{"consonant clusters", "word stress", "linking"}
	}

	stress := "correct"
	if rng.Float64() > 0.6 {
		stress = "needs_work"
	}

	wpm := 120 + rng.Float64()*60
	pace := "optimal"
	if wpm > 165 {
		pace = "slightly_fast"
	} else if wpm < 130 {
		pace = "slightly_slow"
	}

	return PronunciationAnalysis{
		OverallScore:      round1(overall),
		WordScores:        wordScores,
		ProblematicSounds: sounds,
		StressPattern:     stress,
		RhythmScore:       round3(0.7 + rng.Float64()*0.3),
		IntonationScore:   round3(0.7 + rng.Float64()*0.25),
		WordsPerMinute:    round1(wpm),
		PaceRating:        pace,
		Suggestions: []string{
			"Focus on vowel sounds in stressed syllables",
			"Practice consonant clusters slowly",
			"Work on linking words smoothly",
		},
	}
}

// SpeakingMetrics summarizes pace and clarity for one transcription.
type SpeakingMetrics struct {
	WordsPerMinute float64 `json:"words_per_minute"`
	PauseFrequency string  `json:"pause_frequency"`
	SpeechClarity  string  `json:"speech_clarity"`
	EmotionalTone  string  `json:"emotional_tone"`
}

// SpeakingMetricsFor derives pace from the word timestamps. Transcriptions
// without timing data get the neutral defaults.
func (e *SpeechEngine) SpeakingMetricsFor(t Transcription) SpeakingMetrics {
	wpm := 150.0
	if n := len(t.Words); n > 0 {
		if duration := t.Words[n-1].End; duration > 0 {
			wpm = round1(float64(n) / duration * 60)
		}
	}

	pauses := "optimal"
	switch {
	case wpm > 180:
		pauses = "too_few"
	case wpm < 100:
		pauses = "frequent"
	}

	clarity := "good"
	if t.Confidence >= 0.9 {
		clarity = "excellent"
	}

	return SpeakingMetrics{
		WordsPerMinute: wpm,
		PauseFrequency: pauses,
		SpeechClarity:  clarity,
		EmotionalTone:  "confident",
	}
}

// TranscriptionSuggestions picks coaching lines for the detected pace.
func (e *SpeechEngine) TranscriptionSuggestions(metrics SpeakingMetrics) []string {
	suggestions := []string{
		"Try to vary your intonation more",
		"Consider practicing linking words",
	}

	switch metrics.PauseFrequency {
	case "too_few":
		suggestions = append(suggestions, "Slow down and pause between phrases")
	case "frequent":
		suggestions = append(suggestions, "Work on keeping a steadier pace")
	default:
		suggestions = append(suggestions, "Good pace and rhythm")
	}

	if metrics.SpeechClarity == "excellent" {
		suggestions = append(suggestions, "Excellent clarity in your speech")
	}
	return suggestions
}

// RealTimeFeedback is the instant-coaching payload for a live audio chunk.
type RealTimeFeedback struct {
	InstantScore    float64  `json:"instant_score"`
	LiveCorrections []string `json:"live_corrections"`
	Encouragement   string   `json:"encouragement"`
	PacingFeedback  string   `json:"pacing_feedback"`
	ClarityStatus   string   `json:"clarity_status"`
}

var liveCorrections = []string{
	"Try the 'th' sound more clearly",
	"Slow down on difficult words",
	"Great rhythm, keep going!",
	"Focus on the ending sounds",
}

var encouragements = []string{
	"You're doing great! Keep practicing!",
	"Excellent progress! Your pronunciation is improving!",
	"Perfect! You're getting the hang of it!",
	"Amazing work! Your fluency is developing well!",
}

// LiveFeedback needs nothing but chunk size: an empty chunk signals a
// dropped microphone and gets flagged for clarity.
func (e *SpeechEngine) LiveFeedback(chunkBytes int) RealTimeFeedback {
	clarity := "clear"
	if chunkBytes == 0 {
		clarity = "needs_clarity"
	}

	return RealTimeFeedback{
		InstantScore:    round1(70 + rand.Float64()*25),
		LiveCorrections: []string{liveCorrections[rand.Intn(len(liveCorrections))]},
		Encouragement:   encouragements[rand.Intn(len(encouragements))],
		PacingFeedback:  "Good pace, keep going!",
		ClarityStatus:   clarity,
	}
}

// FeedbackHeadline maps an overall score to the one-line verdict shown first.
func FeedbackHeadline(score float64) string {
	switch {
	case score > 90:
		return "Excellent! Your pronunciation is spot on!"
	case score > 80:
		return "Great job! Minor improvements needed."
	case score > 60:
		return "Good effort! Let's work on clarity."
	default:
		return "Keep practicing! Try speaking slowly and clearly."
	}
}
