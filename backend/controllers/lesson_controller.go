package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/services"
	"bilingui/backend/utils"
)

type LessonController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLessonController(db *gorm.DB, cfg *config.Config) *LessonController {
	return &LessonController{DB: db, Cfg: cfg}
}

// [+] GetLessons godoc
// @Summary List lessons
// @Description Lists lessons, optionally filtered by language, level and type
// @Tags lessons
// @Produce json
// @Param language query string false "Language filter"
// @Param level query string false "Level filter"
// @Param type query string false "Lesson type filter"
// @Success 200 {object} utils.SuccessResponse
// @Router /lessons [get]
func (lc *LessonController) GetLessons(c *fiber.Ctx) error {
	query := lc.DB.Model(&models.Lesson{})
	if language := c.Query("language"); language != "" {
		query = query.Where("language = ?", language)
	}
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if lessonType := c.Query("type"); lessonType != "" {
		query = query.Where("type = ?", lessonType)
	}

	var lessons []models.Lesson
	if err := query.Order("id asc").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not query lessons")
	}
	return utils.Success(c, fiber.StatusOK, lessons)
}

func (lc *LessonController) GetLesson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

type LessonInput struct {
	Language string `json:"language" validate:"required"`
	Level    string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Title    string `json:"title" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=reading listening speaking question chat"`
	Content  string `json:"content" validate:"required"`
	Answer   string `json:"answer"`
}

func (lc *LessonController) CreateLesson(c *fiber.Ctx) error {
	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	lesson := models.Lesson{
		Language: input.Language,
		Level:    input.Level,
		Title:    input.Title,
		Type:     input.Type,
		Content:  input.Content,
		Answer:   input.Answer,
	}
	if err := lc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}
	return utils.Created(c, lesson)
}

func (lc *LessonController) UpdateLesson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}

	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Language != "" {
		lesson.Language = input.Language
	}
	if input.Level != "" {
		lesson.Level = input.Level
	}
	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.Type != "" {
		lesson.Type = input.Type
	}
	if input.Content != "" {
		lesson.Content = input.Content
	}
	if input.Answer != "" {
		lesson.Answer = input.Answer
	}

	if err := lc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

func (lc *LessonController) DeleteLesson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	result := lc.DB.Delete(&models.Lesson{}, id)
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Lesson not found")
	}
	return utils.NoContent(c)
}

type AnswerInput struct {
	Answer string `json:"answer" validate:"required"`
}

// CheckAnswer grades a submitted answer against the lesson's expected one.
func (lc *LessonController) CheckAnswer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input AnswerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}
	if lesson.Answer == "" {
		return utils.BadRequest(c, "Lesson has no expected answer")
	}

	feedback := services.EvaluateAnswer(input.Answer, lesson.Answer)
	return utils.Success(c, fiber.StatusOK, feedback)
}
