package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateXPBaseTable(t *testing.T) {
	engine := NewGamificationEngine()
	perf := PerformanceData{Score: 75}

	cases := []struct {
		activity string
		base     int
	}{
		{"lesson_completion", 50},
		{"pronunciation_practice", 30},
		{"conversation_practice", 40},
		{"grammar_exercise", 25},
		{"vocabulary_drill", 20},
		{"listening_comprehension", 35},
		{"speaking_assessment", 45},
		{"unknown_activity", 20},
	}

	for _, tc := range cases {
		got := engine.CalculateXP(tc.activity, perf, 0, 0)
		assert.Equal(t, tc.base, got.BaseXP, tc.activity)
	}
}

func TestCalculateXPMultipliers(t *testing.T) {
	engine := NewGamificationEngine()

	// 95%+ doubles, 30-day streak doubles again, week-long consistency adds 50.
	got := engine.CalculateXP("lesson_completion", PerformanceData{Score: 96}, 30, 7)
	assert.Equal(t, 2.0, got.PerformanceMultiplier)
	assert.Equal(t, 2.0, got.StreakMultiplier)
	assert.Equal(t, 50, got.ConsistencyBonus)
	assert.Equal(t, 50*2*2+50, got.TotalXP)

	// Poor performance shrinks the reward but never below 1.
	got = engine.CalculateXP("vocabulary_drill", PerformanceData{Score: 10}, 0, 0)
	assert.Equal(t, 0.8, got.PerformanceMultiplier)
	assert.Equal(t, 16, got.TotalXP)
}

func TestPerformanceMultiplierBands(t *testing.T) {
	assert.Equal(t, 2.0, performanceMultiplier(95))
	assert.Equal(t, 1.5, performanceMultiplier(85))
	assert.Equal(t, 1.2, performanceMultiplier(70))
	assert.Equal(t, 1.0, performanceMultiplier(50))
	assert.Equal(t, 0.8, performanceMultiplier(49))
}

func TestStreakMultiplierBands(t *testing.T) {
	assert.Equal(t, 2.0, streakMultiplier(30))
	assert.Equal(t, 1.5, streakMultiplier(14))
	assert.Equal(t, 1.3, streakMultiplier(7))
	assert.Equal(t, 1.1, streakMultiplier(3))
	assert.Equal(t, 1.0, streakMultiplier(2))
}

func TestUpdateStreakSameDayKeepsStreak(t *testing.T) {
	engine := NewGamificationEngine()
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	got := engine.UpdateStreak(5, 9, earlier, now)
	assert.Equal(t, 5, got.CurrentStreak)
	assert.Equal(t, "maintained", got.Status)
}

func TestUpdateStreakNextDayExtends(t *testing.T) {
	engine := NewGamificationEngine()
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

	got := engine.UpdateStreak(6, 6, yesterday, now)
	assert.Equal(t, 7, got.CurrentStreak)
	assert.Equal(t, "extended", got.Status)
	assert.Equal(t, 7, got.LongestStreak)
}

func TestUpdateStreakLongGapResets(t *testing.T) {
	engine := NewGamificationEngine()
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	lastWeek := now.AddDate(0, 0, -5)

	got := engine.UpdateStreak(12, 20, lastWeek, now)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, "reset", got.Status)
	assert.Equal(t, 20, got.LongestStreak)
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	engine := NewGamificationEngine()

	got := engine.UpdateStreak(0, 0, time.Time{}, time.Now())
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, "started", got.Status)
}

func TestLevelCurve(t *testing.T) {
	assert.Equal(t, 500, XPForNextLevel(0))
	assert.Equal(t, 1000, XPForNextLevel(1))
	assert.Equal(t, 5500, XPForNextLevel(10))

	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(499))
	assert.Equal(t, 2, LevelForXP(1000))
	assert.Equal(t, 10, LevelForXP(5000))
}

func TestLevelProgressFor(t *testing.T) {
	engine := NewGamificationEngine()

	got := engine.LevelProgressFor(750)
	assert.Equal(t, 1, got.CurrentLevel)
	assert.Equal(t, 750, got.CurrentXP)
	assert.Equal(t, 1000, got.XPForNextLevel)
	assert.InDelta(t, 75.0, got.ProgressPercentage, 0.01)
}

func TestCreateChallengesIncludeWeakAreas(t *testing.T) {
	engine := NewGamificationEngine()

	challenges := engine.CreateChallenges(1, []string{"pronunciation", "grammar"}, 4)
	assert.NotEmpty(t, challenges)

	var types []string
	for _, ch := range challenges {
		types = append(types, ch.Type)
	}
	assert.Contains(t, types, "skill_improvement")
}

func TestMotivationForThriving(t *testing.T) {
	engine := NewGamificationEngine()

	got := engine.MotivationFor(90, 10)
	assert.Equal(t, "thriving", got.MotivationState)
	assert.NotEmpty(t, got.PrimaryMessage)
	assert.NotEmpty(t, got.Quote)
}
