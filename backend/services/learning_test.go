package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func historyWithScores(scores ...float64) []PerformanceRecord {
	records := make([]PerformanceRecord, 0, len(scores))
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	for i, s := range scores {
		records = append(records, PerformanceRecord{
			Score:           s,
			DurationMinutes: 15,
			ExerciseType:    "reading",
			Skills:          []string{"vocabulary"},
			Timestamp:       base.AddDate(0, 0, i),
		})
	}
	return records
}

func TestAnalyzeLearningPatternEmptyHistory(t *testing.T) {
	engine := NewLearningEngine()

	got := engine.AnalyzeLearningPattern(7, nil)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "mixed", got.LearningStyle)
	assert.Equal(t, 15, got.OptimalSessionLength)
	assert.Equal(t, []int{9, 14, 19}, got.PeakPerformanceHours)
	assert.Equal(t, 0.75, got.RetentionRate)
}

func TestLearningVelocityImprovingScores(t *testing.T) {
	improving := historyWithScores(50, 55, 60, 65, 70, 75, 80, 85, 90, 95)
	flat := historyWithScores(70, 70, 70, 70, 70, 70, 70, 70, 70, 70)

	assert.Greater(t, learningVelocity(improving), learningVelocity(flat))
	assert.InDelta(t, 0.5, learningVelocity(flat), 0.01)
}

func TestRetentionRateDecline(t *testing.T) {
	declining := historyWithScores(90, 90, 90, 90, 90, 45, 45, 45, 45, 45)
	assert.InDelta(t, 0.5, retentionRate(declining), 0.01)

	improving := historyWithScores(60, 60, 60, 60, 60, 90, 90, 90, 90, 90)
	assert.Equal(t, 1.0, retentionRate(improving))
}

func TestConsistencyScoreStableBeatsVolatile(t *testing.T) {
	stable := historyWithScores(80, 81, 79, 80, 82, 80, 79, 81, 80, 80)
	volatile := historyWithScores(30, 95, 20, 90, 40, 85, 25, 100, 35, 90)

	assert.Greater(t, consistencyScore(stable), consistencyScore(volatile))
}

func TestStrengthsAndWeaknesses(t *testing.T) {
	history := []PerformanceRecord{
		{Score: 95, Skills: []string{"vocabulary"}},
		{Score: 90, Skills: []string{"vocabulary"}},
		{Score: 40, Skills: []string{"pronunciation"}},
		{Score: 50, Skills: []string{"pronunciation"}},
		{Score: 70, Skills: []string{"grammar"}},
	}

	strong, weak := strengthsAndWeaknesses(history)
	assert.Contains(t, strong, "vocabulary")
	assert.Contains(t, weak, "pronunciation")
	assert.NotContains(t, strong, "grammar")
	assert.NotContains(t, weak, "grammar")
}

func TestLearningStyleBuckets(t *testing.T) {
	history := []PerformanceRecord{
		{Score: 90, ExerciseType: "listening_drill"},
		{Score: 85, ExerciseType: "audio_story"},
		{Score: 40, ExerciseType: "reading"},
	}
	assert.Equal(t, "auditory", learningStyle(history))
}

func TestOptimalSessionLengthClamped(t *testing.T) {
	short := []PerformanceRecord{
		{Score: 95, DurationMinutes: 4},
		{Score: 90, DurationMinutes: 3},
	}
	assert.Equal(t, 10, optimalSessionLength(short))

	long := []PerformanceRecord{
		{Score: 95, DurationMinutes: 55},
		{Score: 40, DurationMinutes: 15},
	}
	assert.Equal(t, 30, optimalSessionLength(long))
}

func TestPeakHoursTopThree(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	var history []PerformanceRecord
	for _, h := range []int{8, 8, 12, 12, 20, 20, 22, 22} {
		history = append(history, PerformanceRecord{
			Score:     float64(50 + h),
			Timestamp: day.Add(time.Duration(h) * time.Hour),
		})
	}

	got := peakHours(history)
	assert.Len(t, got, 3)
	assert.Equal(t, 22, got[0])
}

func TestGenerateAdaptiveContentDifficulty(t *testing.T) {
	engine := NewLearningEngine()

	strong := LearningProfile{
		UserID:           1,
		LearningVelocity: 0.9,
		LearningStyle:    "auditory",
		SuccessPrediction: SuccessPrediction{
			SuccessProbability: 0.9,
		},
	}
	got := engine.GenerateAdaptiveContent(strong, "conversation")
	assert.Equal(t, "challenging", got.DifficultyLevel)
	assert.Equal(t, "audio_intensive", got.ContentType)
	assert.NotEmpty(t, got.Exercises)
	assert.NotEmpty(t, got.SpacedRepetition)

	weak := LearningProfile{UserID: 2, LearningStyle: "visual"}
	got = engine.GenerateAdaptiveContent(weak, "grammar")
	assert.Equal(t, "comfortable", got.DifficultyLevel)
}

func TestGenerateLearningPathLevels(t *testing.T) {
	engine := NewLearningEngine()

	advanced := engine.GenerateLearningPath(historyWithScores(88, 90, 92, 87, 91), "advanced")
	assert.Equal(t, "advanced", advanced.CurrentLevel)

	intermediate := engine.GenerateLearningPath(historyWithScores(72, 75, 78, 74, 76), "advanced")
	assert.Equal(t, "intermediate", intermediate.CurrentLevel)
	assert.Equal(t, "6-10 weeks", intermediate.EstimatedDuration)

	beginner := engine.GenerateLearningPath(historyWithScores(40, 45, 50), "advanced")
	assert.Equal(t, "beginner", beginner.CurrentLevel)

	empty := engine.GenerateLearningPath(nil, "")
	assert.Equal(t, "beginner", empty.CurrentLevel)
	assert.Equal(t, "advanced", empty.TargetLevel)
}

func TestCoachBands(t *testing.T) {
	engine := NewLearningEngine()

	top := engine.Coach(PerformanceData{Score: 95, Duration: 20})
	assert.Equal(t, "challenge", top.FocusArea)

	mid := engine.Coach(PerformanceData{Score: 75, Duration: 20})
	assert.Equal(t, "fluency", mid.FocusArea)

	low := engine.Coach(PerformanceData{Score: 40, Duration: 45})
	assert.Equal(t, "accuracy", low.FocusArea)
	assert.Contains(t, low.Adjustments, "Consider shorter, more frequent sessions")
}
