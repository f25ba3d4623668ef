package services

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"
)

// Transcriber converts recorded audio into text. The production
// implementation wraps an external speech model; this repo ships only the
// simulated one, which is also what the endpoints fall back to when no model
// is configured.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (Transcription, error)
}

type Transcription struct {
	Text             string          `json:"transcription"`
	Confidence       float64         `json:"confidence"`
	LanguageDetected string          `json:"language_detected"`
	Words            []WordTimestamp `json:"word_timestamps"`
}

type WordTimestamp struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// SimulatedTranscriber produces deterministic canned transcripts keyed off
// the audio path, so repeated submissions of one file transcribe alike.
type SimulatedTranscriber struct {
	// TargetPhrase, when set, is echoed back as the transcript so that
	// pronunciation scoring exercises the full comparison path.
	TargetPhrase string
}

var cannedTranscripts = []string{
	"Hello, how are you today?",
	"I would like to order a coffee, please.",
	"Could you tell me the way to the train station?",
	"The weather is really nice this afternoon.",
	"I have been studying English for two years.",
}

func (t *SimulatedTranscriber) Transcribe(ctx context.Context, audioPath, language string) (Transcription, error) {
	if err := ctx.Err(); err != nil {
		return Transcription{}, err
	}

	text := t.TargetPhrase
	if text == "" {
		text = cannedTranscripts[pathSeed(audioPath)%uint32(len(cannedTranscripts))]
	}

	rng := rand.New(rand.NewSource(int64(pathSeed(audioPath))))
	return Transcription{
		Text:             text,
		Confidence:       0.85 + rng.Float64()*0.13,
		LanguageDetected: language,
		Words:            wordTimestamps(text, rng),
	}, nil
}

func pathSeed(path string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(path))
	return h.Sum32()
}

// wordTimestamps fabricates plausible word timings: longer words take longer.
func wordTimestamps(text string, rng *rand.Rand) []WordTimestamp {
	words := strings.Fields(text)
	timestamps := make([]WordTimestamp, 0, len(words))

	current := 0.0
	for _, w := range words {
		duration := float64(len(w))*0.1 + 0.1 + rng.Float64()*0.2
		timestamps = append(timestamps, WordTimestamp{
			Word:       w,
			Start:      current,
			End:        current + duration,
			Confidence: 0.8 + rng.Float64()*0.18,
		})
		current += duration
	}
	return timestamps
}
