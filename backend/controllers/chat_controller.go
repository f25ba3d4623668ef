package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/services"
	"bilingui/backend/utils"
)

type ChatController struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Chat *services.ChatService
}

func NewChatController(db *gorm.DB, cfg *config.Config) *ChatController {
	return &ChatController{DB: db, Cfg: cfg, Chat: services.NewChatService()}
}

type ChatInput struct {
	Message     string `json:"message" validate:"required"`
	Personality string `json:"personality"`
	LessonID    *uint  `json:"lesson_id"`
}

// SendMessage answers a chat message and stores the exchange.
func (cc *ChatController) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input ChatInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	reply := cc.Chat.Reply(input.Message, input.Personality)

	log := models.ChatLog{
		UserID:   userID,
		LessonID: input.LessonID,
		Message:  input.Message,
		Response: reply.Response,
	}
	if err := cc.DB.Create(&log).Error; err != nil {
		return utils.InternalServerError(c, "Could not store chat message")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          log.ID,
		"response":    reply.Response,
		"personality": reply.Personality,
		"corrections": reply.Corrections,
		"suggestions": reply.Suggestions,
	})
}

// GetHistory returns the user's recent exchanges, newest first.
func (cc *ChatController) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var logs []models.ChatLog
	if err := cc.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return utils.InternalServerError(c, "Could not query chat history")
	}
	return utils.Success(c, fiber.StatusOK, logs)
}
