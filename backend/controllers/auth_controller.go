package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/services"
	"bilingui/backend/utils"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name" validate:"required"`
	NativeLanguage string `json:"native_language"`
	TargetLanguage string `json:"target_language"`
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates an account, seeds its stats row and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterInput true "Registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		Name:           input.Name,
		NativeLanguage: input.NativeLanguage,
		TargetLanguage: input.TargetLanguage,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.Conflict(c, "Email already registered")
	}

	// Every account starts with an empty stats row so gamification reads
	// never have to handle a missing record.
	ac.DB.Create(&models.UserStats{UserID: user.ID, Level: 1, LastActive: time.Now()})

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Created(c, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// [+] Login godoc
// @Summary User login
// @Description Authenticates credentials, rolls the login streak and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	ac.DB.Create(&models.LoginHistory{UserID: user.ID, LoginTime: time.Now()})

	streak := ac.rollStreak(user.ID)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
		"streak_days": streak,
	})
}

// rollStreak advances the login streak for the user and returns the new
// value. Missing stats rows are created on the fly for accounts predating
// the stats table.
func (ac *AuthController) rollStreak(userID uint) int {
	engine := services.NewGamificationEngine()

	var stats models.UserStats
	if err := ac.DB.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = models.UserStats{UserID: userID, Level: 1, StreakDays: 1, LongestStreak: 1, LastActive: time.Now()}
			ac.DB.Create(&stats)
			return stats.StreakDays
		}
		return 0
	}

	update := engine.UpdateStreak(stats.StreakDays, stats.LongestStreak, stats.LastActive, time.Now())
	stats.StreakDays = update.CurrentStreak
	stats.LongestStreak = update.LongestStreak
	stats.LastActive = time.Now()
	ac.DB.Save(&stats)
	return stats.StreakDays
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, err.Error())
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, user)
}
