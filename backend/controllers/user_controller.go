package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/utils"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetUsers lists all accounts. Admin only, enforced by middleware.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query users")
	}
	return utils.Success(c, fiber.StatusOK, users)
}

// [+] GetProfile godoc
// @Summary Get own profile
// @Description Returns the authenticated user with their gamification stats
// @Tags users
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var stats models.UserStats
	uc.DB.Where("user_id = ?", userID).First(&stats)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":  user,
		"stats": stats,
	})
}

type ProfileUpdateInput struct {
	Name           string `json:"name"`
	AvatarURL      string `json:"avatar_url"`
	NativeLanguage string `json:"native_language"`
	TargetLanguage string `json:"target_language"`
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input ProfileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.NativeLanguage != "" {
		user.NativeLanguage = input.NativeLanguage
	}
	if input.TargetLanguage != "" {
		user.TargetLanguage = input.TargetLanguage
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}
	return utils.Success(c, fiber.StatusOK, user)
}
