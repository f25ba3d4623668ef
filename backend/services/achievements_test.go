package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAchievementsUnlocksAtThreshold(t *testing.T) {
	engine := NewGamificationEngine()

	stats := map[string]int{
		"lessons_completed": 1,
		"streak_days":       7,
	}
	got := engine.CheckAchievements(stats, map[string]bool{})

	ids := make(map[string]bool)
	for _, a := range got {
		ids[a.ID] = true
	}
	assert.True(t, ids["first_lesson"])
	assert.True(t, ids["streak_3"])
	assert.True(t, ids["streak_7"])
	assert.False(t, ids["streak_30"])
}

func TestCheckAchievementsSkipsAlreadyUnlocked(t *testing.T) {
	engine := NewGamificationEngine()

	stats := map[string]int{"lessons_completed": 5}
	unlocked := map[string]bool{"first_lesson": true}

	got := engine.CheckAchievements(stats, unlocked)
	for _, a := range got {
		assert.NotEqual(t, "first_lesson", a.ID)
	}
}

func TestCatalogRaritiesAndRewards(t *testing.T) {
	engine := NewGamificationEngine()
	byID := make(map[string]Achievement)
	for _, a := range engine.Catalog {
		byID[a.ID] = a
	}

	assert.Len(t, engine.Catalog, 13)
	assert.Equal(t, RarityLegendary, byID["streak_100"].Rarity)
	assert.Equal(t, 5000, byID["streak_100"].XPReward)
	assert.Equal(t, RarityCommon, byID["first_lesson"].Rarity)
	assert.Equal(t, 10000, byID["xp_collector"].Threshold)
}

func TestUpcomingAchievementsRespectsLimit(t *testing.T) {
	engine := NewGamificationEngine()

	got := engine.UpcomingAchievements(map[string]int{}, map[string]bool{}, 3)
	assert.Len(t, got, 3)
	for _, p := range got {
		assert.Less(t, p.Current, p.Required)
	}
}
