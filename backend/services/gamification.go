package services

import (
	"fmt"
	"time"
)

// GamificationEngine owns the XP, streak and achievement rules. All of it is
// table lookups and fixed multipliers; persistence belongs to the callers.
type GamificationEngine struct {
	Catalog []Achievement
}

func NewGamificationEngine() *GamificationEngine {
	return &GamificationEngine{Catalog: achievementCatalog()}
}

// PerformanceData describes a finished activity for XP purposes.
type PerformanceData struct {
	Score      float64 `json:"score"`
	Duration   int     `json:"duration"`
	Difficulty string  `json:"difficulty"`
}

// XPBreakdown explains how a reward was computed.
type XPBreakdown struct {
	BaseXP                int     `json:"base_xp"`
	PerformanceMultiplier float64 `json:"performance_multiplier"`
	StreakMultiplier      float64 `json:"streak_multiplier"`
	ConsistencyBonus      int     `json:"consistency_bonus"`
	TotalXP               int     `json:"total_xp"`
	ActivityType          string  `json:"activity_type"`
}

var baseXPByActivity = map[string]int{
	"lesson_completion":       50,
	"pronunciation_practice":  30,
	"conversation_practice":   40,
	"grammar_exercise":        25,
	"vocabulary_drill":        20,
	"listening_comprehension": 35,
	"speaking_assessment":     45,
}

// CalculateXP computes the reward for an activity given the user's current
// streak and how many days in a row they have been active this week.
func (e *GamificationEngine) CalculateXP(activityType string, perf PerformanceData, streakDays, consistencyDays int) XPBreakdown {
	base := baseXPByActivity[activityType]
	if base == 0 {
		base = 20
	}

	perfMult := performanceMultiplier(perf.Score)
	streakMult := streakMultiplier(streakDays)
	bonus := consistencyBonus(consistencyDays)

	total := int(float64(base)*perfMult*streakMult) + bonus
	if total < 1 {
		total = 1
	}

	return XPBreakdown{
		BaseXP:                base,
		PerformanceMultiplier: perfMult,
		StreakMultiplier:      streakMult,
		ConsistencyBonus:      bonus,
		TotalXP:               total,
		ActivityType:          activityType,
	}
}

func performanceMultiplier(score float64) float64 {
	switch {
	case score >= 95:
		return 2.0
	case score >= 85:
		return 1.5
	case score >= 70:
		return 1.2
	case score >= 50:
		return 1.0
	default:
		return 0.8
	}
}

func streakMultiplier(streak int) float64 {
	switch {
	case streak >= 30:
		return 2.0
	case streak >= 14:
		return 1.5
	case streak >= 7:
		return 1.3
	case streak >= 3:
		return 1.1
	default:
		return 1.0
	}
}

func consistencyBonus(days int) int {
	switch {
	case days >= 7:
		return 50
	case days >= 3:
		return 25
	default:
		return 0
	}
}

// StreakUpdate is the outcome of rolling a streak forward for one activity.
type StreakUpdate struct {
	CurrentStreak       int    `json:"current_streak"`
	LongestStreak       int    `json:"longest_streak"`
	Status              string `json:"streak_status"` // started, maintained, extended, reset
	BonusXP             int    `json:"streak_bonus_xp"`
	NextMilestone       int    `json:"next_milestone"`
	StreakLevel         string `json:"streak_level"`
	MotivationalMessage string `json:"motivational_message"`
}

var streakMilestones = []int{3, 7, 14, 30, 100}

// UpdateStreak applies the activity-date rules: a second activity on the same
// day keeps the streak, activity within 48 hours extends it, a longer gap
// resets it to 1.
func (e *GamificationEngine) UpdateStreak(current, longest int, lastActivity, now time.Time) StreakUpdate {
	var status string
	switch {
	case lastActivity.IsZero():
		current = 1
		status = "started"
	case sameDay(lastActivity, now):
		status = "maintained"
	case now.Sub(lastActivity) < 48*time.Hour:
		current++
		status = "extended"
	default:
		current = 1
		status = "reset"
	}

	if current > longest {
		longest = current
	}

	return StreakUpdate{
		CurrentStreak:       current,
		LongestStreak:       longest,
		Status:              status,
		BonusXP:             streakBonusXP(current),
		NextMilestone:       nextStreakMilestone(current),
		StreakLevel:         streakLevel(current),
		MotivationalMessage: streakMotivation(status, current),
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func streakBonusXP(streak int) int {
	switch {
	case streak >= 30:
		return 100
	case streak >= 14:
		return 50
	case streak >= 7:
		return 25
	case streak >= 3:
		return 10
	default:
		return 0
	}
}

func nextStreakMilestone(streak int) int {
	for _, m := range streakMilestones {
		if streak < m {
			return m
		}
	}
	return streak + 100
}

func streakLevel(streak int) string {
	switch {
	case streak >= 100:
		return "legendary"
	case streak >= 30:
		return "gold"
	case streak >= 14:
		return "silver"
	case streak >= 7:
		return "bronze"
	default:
		return "none"
	}
}

func streakMotivation(status string, streak int) string {
	switch status {
	case "started":
		return "Welcome back! Day 1 of your new streak."
	case "extended":
		return fmt.Sprintf("You're on fire! %d days in a row.", streak)
	case "reset":
		return "Every streak starts somewhere. Let's build it back up!"
	default:
		return fmt.Sprintf("Streak safe at %d days. See you tomorrow!", streak)
	}
}

// Level progression: advancing out of level n requires (n+1)*500 total XP.
func XPForNextLevel(level int) int {
	return (level + 1) * 500
}

func LevelForXP(totalXP int) int {
	level := totalXP / 500
	if level < 1 {
		level = 1
	}
	return level
}

// LevelProgress summarizes where a user sits inside the level curve.
type LevelProgress struct {
	CurrentLevel       int     `json:"current_level"`
	CurrentXP          int     `json:"current_xp"`
	XPForNextLevel     int     `json:"xp_for_next_level"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

func (e *GamificationEngine) LevelProgressFor(totalXP int) LevelProgress {
	level := LevelForXP(totalXP)
	next := XPForNextLevel(level)
	pct := float64(totalXP) / float64(next) * 100
	if pct > 100 {
		pct = 100
	}
	return LevelProgress{
		CurrentLevel:       level,
		CurrentXP:          totalXP,
		XPForNextLevel:     next,
		ProgressPercentage: pct,
	}
}

// Challenge is a time-boxed personal goal shown on the gamification profile.
type Challenge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Current     int    `json:"current"`
	DurationDay int    `json:"duration_days"`
	RewardXP    int    `json:"reward_xp"`
	RewardBadge string `json:"reward_badge"`
}

// CreateChallenges builds challenges from the user's weak areas plus the
// standing consistency and community goals.
func (e *GamificationEngine) CreateChallenges(userID uint, weakAreas []string, currentStreak int) []Challenge {
	var challenges []Challenge

	for i, area := range weakAreas {
		if i >= 2 {
			break
		}
		challenges = append(challenges, Challenge{
			ID:          fmt.Sprintf("improve_%s_%d", area, userID),
			Name:        "Master " + titleCase(area),
			Description: fmt.Sprintf("Improve your %s skills", area),
			Type:        "skill_improvement",
			Target:      5,
			DurationDay: 7,
			RewardXP:    300,
			RewardBadge: area + "_improver",
		})
	}

	if currentStreak < 7 {
		challenges = append(challenges, Challenge{
			ID:          fmt.Sprintf("streak_challenge_%d", userID),
			Name:        "Weekly Consistency",
			Description: "Study for 7 days in a row",
			Type:        "consistency",
			Target:      7,
			Current:     currentStreak,
			DurationDay: 7,
			RewardXP:    500,
			RewardBadge: "consistency_champion",
		})
	}

	challenges = append(challenges, Challenge{
		ID:          fmt.Sprintf("social_challenge_%d", userID),
		Name:        "Community Learner",
		Description: "Interact with 3 other learners",
		Type:        "social",
		Target:      3,
		DurationDay: 14,
		RewardXP:    200,
		RewardBadge: "community_member",
	})

	return challenges
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// MotivationContent is the canned encouragement block on the profile payload.
type MotivationContent struct {
	MotivationState string   `json:"motivation_state"`
	PrimaryMessage  string   `json:"primary_message"`
	SuccessTips     []string `json:"success_tips"`
	Quote           string   `json:"inspirational_quote"`
	NextMilestone   string   `json:"next_milestone"`
}

var inspirationalQuotes = []string{
	"The limits of my language mean the limits of my world.",
	"To have another language is to possess a second soul.",
	"Practice isn't the thing you do once you're good. It's the thing you do that makes you good.",
	"A different language is a different vision of life.",
}

func (e *GamificationEngine) MotivationFor(averageScore float64, streakDays int) MotivationContent {
	state := "building"
	primary := "Keep showing up. Small daily sessions beat rare long ones."
	tips := []string{"Set a fixed study time", "Review yesterday's mistakes first"}

	switch {
	case averageScore >= 85 && streakDays >= 7:
		state = "thriving"
		primary = "Outstanding consistency and scores. Time to raise the difficulty!"
		tips = []string{"Try challenging-level content", "Practice with native-speed audio"}
	case averageScore >= 70:
		state = "progressing"
		primary = "Solid progress. Focus your practice on the weakest skill."
		tips = []string{"Alternate speaking and listening days", "Keep sessions under 30 minutes"}
	}

	return MotivationContent{
		MotivationState: state,
		PrimaryMessage:  primary,
		SuccessTips:     tips,
		Quote:           inspirationalQuotes[streakDays%len(inspirationalQuotes)],
		NextMilestone:   fmt.Sprintf("Reach a %d-day streak", nextStreakMilestone(streakDays)),
	}
}
