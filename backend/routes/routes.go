package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/controllers"
	"bilingui/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authController.Me)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/users", authMiddleware, adminMiddleware, userController.GetUsers)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Lesson routes
	lessonController := controllers.NewLessonController(db, cfg)
	lessons := app.Group("/api/lessons", authMiddleware)
	lessons.Get("/", lessonController.GetLessons)
	lessons.Get("/:id", lessonController.GetLesson)
	lessons.Post("/:id/answer", lessonController.CheckAnswer)
	lessons.Post("/", adminMiddleware, lessonController.CreateLesson)
	lessons.Put("/:id", adminMiddleware, lessonController.UpdateLesson)
	lessons.Delete("/:id", adminMiddleware, lessonController.DeleteLesson)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/", progressController.GetAllProgress)
	progress.Get("/statistics", progressController.GetStatistics)
	progress.Get("/:lessonId", progressController.GetLessonProgress)
	progress.Post("/", progressController.CreateProgress)
	progress.Put("/:lessonId", progressController.UpdateProgress)
	progress.Post("/:lessonId/session", progressController.RecordSession)

	// Chat routes
	chatController := controllers.NewChatController(db, cfg)
	chat := app.Group("/api/chat", authMiddleware)
	chat.Post("/", chatController.SendMessage)
	chat.Get("/history", chatController.GetHistory)

	// Audio routes
	audioController := controllers.NewAudioController(db, cfg)
	audio := app.Group("/api/audio", authMiddleware)
	audio.Post("/submit", audioController.SubmitAudio)
	audio.Post("/transcribe", audioController.Transcribe)
	audio.Post("/pronunciation", audioController.AnalyzePronunciation)
	audio.Post("/feedback", audioController.LiveFeedback)
	audio.Get("/stats", audioController.GetStats)

	// Analytics routes (learning + gamification)
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	analytics := app.Group("/api/analytics", authMiddleware)
	analytics.Get("/learning-profile", analyticsController.GetLearningProfile)
	analytics.Post("/adaptive-content", analyticsController.GenerateAdaptiveContent)
	analytics.Get("/learning-path", analyticsController.GetLearningPath)
	analytics.Post("/coaching", analyticsController.Coach)
	analytics.Get("/insights", analyticsController.GetInsights)
	analytics.Get("/gamification/profile", analyticsController.GetGamificationProfile)
	analytics.Get("/leaderboard/:type", analyticsController.GetLeaderboard)
	analytics.Post("/xp", analyticsController.AwardXP)

	// Reports routes
	reportsController := controllers.NewReportsController(db, cfg)
	reports := app.Group("/api/reports", authMiddleware)
	reports.Get("/weekly", reportsController.WeeklyReport)
	reports.Get("/monthly", reportsController.MonthlyReport)
}
