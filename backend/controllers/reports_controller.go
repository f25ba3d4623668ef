package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/utils"
)

type ReportsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewReportsController(db *gorm.DB, cfg *config.Config) *ReportsController {
	return &ReportsController{DB: db, Cfg: cfg}
}

type periodReport struct {
	Period           string    `json:"period"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	LessonsWorked    int       `json:"lessons_worked"`
	LessonsCompleted int       `json:"lessons_completed"`
	XPEarned         int       `json:"xp_earned"`
	MinutesStudied   int       `json:"minutes_studied"`
	AverageAccuracy  float64   `json:"average_accuracy"`
	AudioSubmissions int       `json:"audio_submissions"`
	ChatMessages     int       `json:"chat_messages"`
	CurrentStreak    int       `json:"current_streak"`
	Insights         []string  `json:"insights"`
}

func (rc *ReportsController) WeeklyReport(c *fiber.Ctx) error {
	return rc.report(c, "weekly", time.Now().AddDate(0, 0, -7))
}

func (rc *ReportsController) MonthlyReport(c *fiber.Ctx) error {
	return rc.report(c, "monthly", time.Now().AddDate(0, -1, 0))
}

func (rc *ReportsController) report(c *fiber.Ctx, period string, since time.Time) error {
	userID := c.Locals("user_id").(uint)
	now := time.Now()

	var rows []models.Progress
	if err := rc.DB.Where("user_id = ? AND updated_at >= ?", userID, since).Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query progress")
	}

	report := periodReport{
		Period: period,
		From:   since,
		To:     now,
	}

	var accuracySum float64
	var scored int
	for _, p := range rows {
		report.LessonsWorked++
		if p.IsCompleted && p.CompletedAt != nil && p.CompletedAt.After(since) {
			report.LessonsCompleted++
		}
		report.XPEarned += p.XPGained
		report.MinutesStudied += p.TimeSpentMinutes
		if p.AccuracyScore > 0 {
			accuracySum += p.AccuracyScore
			scored++
		}
	}
	if scored > 0 {
		report.AverageAccuracy = accuracySum / float64(scored)
	}

	var audioCount int64
	rc.DB.Model(&models.AudioSubmission{}).
		Where("user_id = ? AND created_at >= ?", userID, since).Count(&audioCount)
	report.AudioSubmissions = int(audioCount)

	var chatCount int64
	rc.DB.Model(&models.ChatLog{}).
		Where("user_id = ? AND created_at >= ?", userID, since).Count(&chatCount)
	report.ChatMessages = int(chatCount)

	var stats models.UserStats
	if err := rc.DB.Where("user_id = ?", userID).First(&stats).Error; err == nil {
		report.CurrentStreak = stats.StreakDays
	}

	report.Insights = reportInsights(report)
	return utils.Success(c, fiber.StatusOK, report)
}

func reportInsights(r periodReport) []string {
	var insights []string

	switch {
	case r.LessonsWorked == 0:
		insights = append(insights, "No activity this period. Even five minutes a day keeps progress alive.")
	case r.LessonsCompleted >= 5:
		insights = append(insights, "Strong completion rate. Consider moving up a difficulty level.")
	default:
		insights = append(insights, "Steady progress. Finishing started lessons earns the biggest XP rewards.")
	}

	if r.AverageAccuracy >= 85 {
		insights = append(insights, "Accuracy is excellent. Time to practice at native speed.")
	} else if r.AverageAccuracy > 0 && r.AverageAccuracy < 60 {
		insights = append(insights, "Accuracy is below 60%. Revisit earlier lessons before advancing.")
	}

	if r.AudioSubmissions == 0 {
		insights = append(insights, "No speaking practice recorded. Pronunciation improves fastest with daily recordings.")
	}
	if r.CurrentStreak >= 7 {
		insights = append(insights, "Your streak is paying off. Consistent learners retain twice as much vocabulary.")
	}

	return insights
}
