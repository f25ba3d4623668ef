package services

// BadgeRarity buckets achievements by how hard they are to earn.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

type Achievement struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Type          string      `json:"type"` // consistency, improvement, milestone, social, mastery
	Rarity        BadgeRarity `json:"badge_rarity"`
	XPReward      int         `json:"xp_reward"`
	Stat          string      `json:"-"` // stat key the threshold applies to
	Threshold     int         `json:"-"`
	UnlockMessage string      `json:"unlock_message"`
}

func achievementCatalog() []Achievement {
	return []Achievement{
		{ID: "first_lesson", Name: "First Steps", Description: "Complete your first lesson",
			Type: "consistency", Rarity: RarityCommon, XPReward: 50,
			Stat: "lessons_completed", Threshold: 1,
			UnlockMessage: "Welcome to your language journey!"},
		{ID: "streak_3", Name: "Getting Started", Description: "Maintain a 3-day learning streak",
			Type: "consistency", Rarity: RarityCommon, XPReward: 100,
			Stat: "streak_days", Threshold: 3,
			UnlockMessage: "You're building momentum!"},
		{ID: "streak_7", Name: "Weekly Warrior", Description: "Maintain a 7-day learning streak",
			Type: "consistency", Rarity: RarityRare, XPReward: 250,
			Stat: "streak_days", Threshold: 7,
			UnlockMessage: "One week of dedication!"},
		{ID: "streak_30", Name: "Monthly Master", Description: "Maintain a 30-day learning streak",
			Type: "consistency", Rarity: RarityEpic, XPReward: 1000,
			Stat: "streak_days", Threshold: 30,
			UnlockMessage: "Incredible consistency!"},
		{ID: "streak_100", Name: "Century Champion", Description: "Maintain a 100-day learning streak",
			Type: "consistency", Rarity: RarityLegendary, XPReward: 5000,
			Stat: "streak_days", Threshold: 100,
			UnlockMessage: "You are unstoppable!"},
		{ID: "pronunciation_pro", Name: "Pronunciation Pro", Description: "Score 90+ on pronunciation 10 times",
			Type: "improvement", Rarity: RarityRare, XPReward: 300,
			Stat: "pronunciation_scores_90_plus", Threshold: 10,
			UnlockMessage: "Your pronunciation is excellent!"},
		{ID: "fluency_master", Name: "Fluency Master", Description: "Achieve 95+ fluency score",
			Type: "improvement", Rarity: RarityEpic, XPReward: 500,
			Stat: "max_fluency_score", Threshold: 95,
			UnlockMessage: "You speak like a native!"},
		{ID: "level_up", Name: "Level Up", Description: "Reach level 10",
			Type: "milestone", Rarity: RarityRare, XPReward: 400,
			Stat: "level", Threshold: 10,
			UnlockMessage: "You've leveled up significantly!"},
		{ID: "xp_collector", Name: "XP Collector", Description: "Earn 10,000 total XP",
			Type: "milestone", Rarity: RarityEpic, XPReward: 1000,
			Stat: "total_xp", Threshold: 10000,
			UnlockMessage: "You're a dedicated learner!"},
		{ID: "helpful_friend", Name: "Helpful Friend", Description: "Help 5 friends with practice",
			Type: "social", Rarity: RarityRare, XPReward: 300,
			Stat: "friends_helped", Threshold: 5,
			UnlockMessage: "You're a great learning partner!"},
		{ID: "community_leader", Name: "Community Leader", Description: "Be in top 10 on leaderboard for 7 days",
			Type: "social", Rarity: RarityEpic, XPReward: 750,
			Stat: "leaderboard_top10_days", Threshold: 7,
			UnlockMessage: "You inspire others!"},
		{ID: "grammar_guru", Name: "Grammar Guru", Description: "Perfect grammar score in 20 exercises",
			Type: "mastery", Rarity: RarityEpic, XPReward: 600,
			Stat: "perfect_grammar_scores", Threshold: 20,
			UnlockMessage: "Your grammar is impeccable!"},
		{ID: "conversation_champion", Name: "Conversation Champion", Description: "Complete 50 conversation exercises",
			Type: "mastery", Rarity: RarityEpic, XPReward: 800,
			Stat: "conversation_exercises", Threshold: 50,
			UnlockMessage: "You're a conversation expert!"},
	}
}

// CheckAchievements returns catalog entries whose threshold the stats meet
// and that are not in the already-unlocked set.
func (e *GamificationEngine) CheckAchievements(stats map[string]int, unlocked map[string]bool) []Achievement {
	var newly []Achievement
	for _, a := range e.Catalog {
		if unlocked[a.ID] {
			continue
		}
		if stats[a.Stat] >= a.Threshold {
			newly = append(newly, a)
		}
	}
	return newly
}

// UpcomingAchievements lists locked achievements sorted by how close the
// user is, for the motivation block.
type AchievementProgress struct {
	Achievement Achievement `json:"achievement"`
	Current     int         `json:"current"`
	Required    int         `json:"required"`
}

func (e *GamificationEngine) UpcomingAchievements(stats map[string]int, unlocked map[string]bool, limit int) []AchievementProgress {
	var upcoming []AchievementProgress
	for _, a := range e.Catalog {
		if unlocked[a.ID] || stats[a.Stat] >= a.Threshold {
			continue
		}
		upcoming = append(upcoming, AchievementProgress{
			Achievement: a,
			Current:     stats[a.Stat],
			Required:    a.Threshold,
		})
		if len(upcoming) == limit {
			break
		}
	}
	return upcoming
}
