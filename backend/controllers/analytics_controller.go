package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/services"
	"bilingui/backend/utils"
)

type AnalyticsController struct {
	DB           *gorm.DB
	Cfg          *config.Config
	Learning     *services.LearningEngine
	Gamification *services.GamificationEngine
	Leaderboard  *services.LeaderboardService
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{
		DB:           db,
		Cfg:          cfg,
		Learning:     services.NewLearningEngine(),
		Gamification: services.NewGamificationEngine(),
		Leaderboard:  services.NewLeaderboardService(db),
	}
}

// performanceHistory converts the user's progress rows into scored records
// for the learning engine, oldest first.
func (an *AnalyticsController) performanceHistory(userID uint) ([]services.PerformanceRecord, error) {
	var rows []models.Progress
	if err := an.DB.Where("user_id = ?", userID).Order("updated_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	lessonIDs := make([]uint, 0, len(rows))
	for _, p := range rows {
		lessonIDs = append(lessonIDs, p.LessonID)
	}
	var lessons []models.Lesson
	an.DB.Where("id IN ?", lessonIDs).Find(&lessons)
	typeByLesson := make(map[uint]string, len(lessons))
	for _, l := range lessons {
		typeByLesson[l.ID] = l.Type
	}

	history := make([]services.PerformanceRecord, 0, len(rows))
	for _, p := range rows {
		skills := []string{"accuracy"}
		if p.PronunciationScore > 0 {
			skills = append(skills, "pronunciation")
		}
		if p.FluencyScore > 0 {
			skills = append(skills, "fluency")
		}
		history = append(history, services.PerformanceRecord{
			Score:           p.AccuracyScore,
			DurationMinutes: p.TimeSpentMinutes,
			ExerciseType:    typeByLesson[p.LessonID],
			Skills:          skills,
			Timestamp:       p.UpdatedAt,
		})
	}
	return history, nil
}

func (an *AnalyticsController) GetLearningProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	history, err := an.performanceHistory(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query history")
	}

	profile := an.Learning.AnalyzeLearningPattern(userID, history)
	return utils.Success(c, fiber.StatusOK, profile)
}

type AdaptiveContentInput struct {
	LessonType string `json:"lesson_type"`
}

func (an *AnalyticsController) GenerateAdaptiveContent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input AdaptiveContentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	history, err := an.performanceHistory(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query history")
	}

	profile := an.Learning.AnalyzeLearningPattern(userID, history)
	content := an.Learning.GenerateAdaptiveContent(profile, input.LessonType)
	return utils.Success(c, fiber.StatusOK, content)
}

func (an *AnalyticsController) GetLearningPath(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	history, err := an.performanceHistory(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query history")
	}

	path := an.Learning.GenerateLearningPath(history, c.Query("target_level"))
	return utils.Success(c, fiber.StatusOK, path)
}

func (an *AnalyticsController) Coach(c *fiber.Ctx) error {
	var perf services.PerformanceData
	if err := c.BodyParser(&perf); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	response := an.Learning.Coach(perf)
	return utils.Success(c, fiber.StatusOK, response)
}

// GetInsights combines the profile, path and gamification snapshot into one
// payload for the dashboard.
func (an *AnalyticsController) GetInsights(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	history, err := an.performanceHistory(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query history")
	}

	profile := an.Learning.AnalyzeLearningPattern(userID, history)
	path := an.Learning.GenerateLearningPath(history, "")

	var stats models.UserStats
	an.DB.Where("user_id = ?", userID).First(&stats)

	avg := 0.0
	if len(history) > 0 {
		for _, r := range history {
			avg += r.Score
		}
		avg /= float64(len(history))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"learning_profile": profile,
		"learning_path":    path,
		"level":            an.Gamification.LevelProgressFor(stats.TotalXP),
		"streak_days":      stats.StreakDays,
		"motivation":       an.Gamification.MotivationFor(avg, stats.StreakDays),
		"generated_at":     time.Now(),
	})
}

// achievementStats builds the stat map the achievement thresholds check
// against. Social stats are not tracked yet and stay at zero.
func (an *AnalyticsController) achievementStats(userID uint, stats models.UserStats) map[string]int {
	statMap := map[string]int{
		"lessons_completed": stats.LessonsCompleted,
		"streak_days":       stats.StreakDays,
		"level":             stats.Level,
		"total_xp":          stats.TotalXP,
	}

	var pronCount int64
	an.DB.Model(&models.Progress{}).
		Where("user_id = ? AND pronunciation_score >= 90", userID).Count(&pronCount)
	statMap["pronunciation_scores_90_plus"] = int(pronCount)

	var maxFluency float64
	an.DB.Model(&models.Progress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(fluency_score), 0)").Scan(&maxFluency)
	statMap["max_fluency_score"] = int(maxFluency)

	var convCount int64
	an.DB.Model(&models.ChatLog{}).Where("user_id = ?", userID).Count(&convCount)
	statMap["conversation_exercises"] = int(convCount)

	return statMap
}

func (an *AnalyticsController) unlockedSet(userID uint) map[string]bool {
	var unlocked []models.UnlockedAchievement
	an.DB.Where("user_id = ?", userID).Find(&unlocked)
	set := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		set[u.AchievementID] = true
	}
	return set
}

func (an *AnalyticsController) GetGamificationProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var stats models.UserStats
	if err := an.DB.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		stats = models.UserStats{UserID: userID, Level: 1}
	}

	statMap := an.achievementStats(userID, stats)
	unlocked := an.unlockedSet(userID)

	// Unlock anything newly earned before rendering the profile.
	newly := an.Gamification.CheckAchievements(statMap, unlocked)
	for _, a := range newly {
		an.DB.Create(&models.UnlockedAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			UnlockedAt:    time.Now(),
		})
		unlocked[a.ID] = true
		stats.TotalXP += a.XPReward
		stats.AchievementsUnlocked++
	}
	if len(newly) > 0 {
		stats.Level = services.LevelForXP(stats.TotalXP)
		an.DB.Save(&stats)
	}

	weakAreas := []string{"pronunciation"}
	if history, err := an.performanceHistory(userID); err == nil && len(history) > 0 {
		profile := an.Learning.AnalyzeLearningPattern(userID, history)
		if len(profile.WeakAreas) > 0 {
			weakAreas = profile.WeakAreas
		}
	}

	avgAccuracy := 0.0
	an.DB.Model(&models.Progress{}).
		Where("user_id = ? AND accuracy_score > 0", userID).
		Select("COALESCE(AVG(accuracy_score), 0)").Scan(&avgAccuracy)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"stats":                 stats,
		"level":                 an.Gamification.LevelProgressFor(stats.TotalXP),
		"new_achievements":      newly,
		"upcoming_achievements": an.Gamification.UpcomingAchievements(statMap, unlocked, 3),
		"challenges":            an.Gamification.CreateChallenges(userID, weakAreas, stats.StreakDays),
		"motivation":            an.Gamification.MotivationFor(avgAccuracy, stats.StreakDays),
	})
}

func (an *AnalyticsController) GetLeaderboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	board, err := an.Leaderboard.Generate(c.Params("type"), userID)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, board)
}

type XPInput struct {
	ActivityType string  `json:"activity_type" validate:"required"`
	Score        float64 `json:"score" validate:"gte=0,lte=100"`
	Duration     int     `json:"duration" validate:"gte=0"`
	Difficulty   string  `json:"difficulty"`
}

// AwardXP computes and persists the reward for a completed activity.
func (an *AnalyticsController) AwardXP(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input XPInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var stats models.UserStats
	if err := an.DB.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		stats = models.UserStats{UserID: userID, Level: 1}
		an.DB.Create(&stats)
	}

	streak := an.Gamification.UpdateStreak(stats.StreakDays, stats.LongestStreak, stats.LastActive, time.Now())
	perf := services.PerformanceData{Score: input.Score, Duration: input.Duration, Difficulty: input.Difficulty}
	breakdown := an.Gamification.CalculateXP(input.ActivityType, perf, streak.CurrentStreak, an.activeDaysThisWeek(userID))

	stats.TotalXP += breakdown.TotalXP + streak.BonusXP
	stats.StreakDays = streak.CurrentStreak
	stats.LongestStreak = streak.LongestStreak
	stats.LastActive = time.Now()
	stats.Level = services.LevelForXP(stats.TotalXP)
	if input.ActivityType == "lesson_completion" {
		stats.LessonsCompleted++
	}
	if err := an.DB.Save(&stats).Error; err != nil {
		return utils.InternalServerError(c, "Could not save stats")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"xp":     breakdown,
		"streak": streak,
		"level":  an.Gamification.LevelProgressFor(stats.TotalXP),
	})
}

// activeDaysThisWeek counts distinct login days over the last 7 days.
func (an *AnalyticsController) activeDaysThisWeek(userID uint) int {
	var count int64
	an.DB.Model(&models.LoginHistory{}).
		Where("user_id = ? AND login_time >= ?", userID, time.Now().AddDate(0, 0, -7)).
		Distinct("DATE(login_time)").
		Count(&count)
	return int(count)
}
