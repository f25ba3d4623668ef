package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/utils"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

func (pc *ProgressController) GetAllProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var progress []models.Progress
	if err := pc.DB.Where("user_id = ?", userID).Order("updated_at desc").Find(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not query progress")
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

func (pc *ProgressController) GetLessonProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	lessonID, err := c.ParamsInt("lessonId")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var progress models.Progress
	if err := pc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		return utils.NotFound(c, "No progress for this lesson")
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

type CreateProgressInput struct {
	LessonID uint `json:"lesson_id" validate:"required"`
}

func (pc *ProgressController) CreateProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input CreateProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var lesson models.Lesson
	if err := pc.DB.First(&lesson, input.LessonID).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}

	var existing models.Progress
	err := pc.DB.Where("user_id = ? AND lesson_id = ?", userID, input.LessonID).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Progress already exists for this lesson")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query progress")
	}

	progress := models.Progress{
		UserID:       userID,
		LessonID:     input.LessonID,
		CurrentLevel: lesson.Level,
		StartedAt:    time.Now(),
	}
	if err := pc.DB.Create(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not create progress")
	}
	return utils.Created(c, progress)
}

type UpdateProgressInput struct {
	PercentComplete *float64 `json:"percent_complete" validate:"omitempty,gte=0,lte=100"`
	AccuracyScore   *float64 `json:"accuracy_score" validate:"omitempty,gte=0,lte=100"`
	FluencyScore    *float64 `json:"fluency_score" validate:"omitempty,gte=0,lte=100"`
	Pronunciation   *float64 `json:"pronunciation_score" validate:"omitempty,gte=0,lte=100"`
	CurrentLevel    *string  `json:"current_level"`
}

// UpdateProgress applies a partial update. Nil fields stay untouched.
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	lessonID, err := c.ParamsInt("lessonId")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input UpdateProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var progress models.Progress
	if err := pc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		return utils.NotFound(c, "No progress for this lesson")
	}

	if input.PercentComplete != nil {
		progress.PercentComplete = *input.PercentComplete
		if progress.PercentComplete >= 100 && !progress.IsCompleted {
			progress.IsCompleted = true
			now := time.Now()
			progress.CompletedAt = &now
		}
	}
	if input.AccuracyScore != nil {
		progress.AccuracyScore = *input.AccuracyScore
	}
	if input.FluencyScore != nil {
		progress.FluencyScore = *input.FluencyScore
	}
	if input.Pronunciation != nil {
		progress.PronunciationScore = *input.Pronunciation
	}
	if input.CurrentLevel != nil {
		progress.CurrentLevel = *input.CurrentLevel
	}

	if err := pc.DB.Save(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// [+] RecordSession godoc
// @Summary Record a study session
// @Description Folds session time, scores and XP into the lesson's progress row, creating it on first contact
// @Tags progress
// @Accept json
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Param session body models.SessionData true "Session data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /progress/{lessonId}/session [post]
func (pc *ProgressController) RecordSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	lessonID, err := c.ParamsInt("lessonId")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var session models.SessionData
	if err := c.BodyParser(&session); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(session); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var progress models.Progress
	err = pc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.Progress{
			UserID:    userID,
			LessonID:  uint(lessonID),
			StartedAt: time.Now(),
		}
	} else if err != nil {
		return utils.InternalServerError(c, "Could not query progress")
	}

	wasCompleted := progress.IsCompleted
	progress.ApplySession(session)

	if err := pc.DB.Save(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not save session")
	}

	// Mirror XP and completion into the user's stats row.
	var stats models.UserStats
	if err := pc.DB.Where("user_id = ?", userID).First(&stats).Error; err == nil {
		stats.TotalXP += session.XPEarned
		if progress.IsCompleted && !wasCompleted {
			stats.LessonsCompleted++
		}
		stats.LastActive = time.Now()
		pc.DB.Save(&stats)
	}

	return utils.Success(c, fiber.StatusOK, progress)
}

func (pc *ProgressController) GetStatistics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var rows []models.Progress
	if err := pc.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query progress")
	}

	stats := models.ProgressStatistics{TotalLessons: len(rows)}
	var accuracySum float64
	var scored int
	for _, p := range rows {
		if p.IsCompleted {
			stats.CompletedLessons++
		}
		stats.TotalXP += p.TotalXP
		stats.TotalTimeMinutes += p.TimeSpentMinutes
		if p.AccuracyScore > 0 {
			accuracySum += p.AccuracyScore
			scored++
		}
	}
	if stats.TotalLessons > 0 {
		stats.CompletionRate = float64(stats.CompletedLessons) / float64(stats.TotalLessons) * 100
	}
	stats.TotalTimeHours = float64(stats.TotalTimeMinutes) / 60
	if scored > 0 {
		stats.AverageAccuracy = accuracySum / float64(scored)
	}

	var userStats models.UserStats
	if err := pc.DB.Where("user_id = ?", userID).First(&userStats).Error; err == nil {
		stats.CurrentStreak = userStats.StreakDays
	}

	return utils.Success(c, fiber.StatusOK, stats)
}
