package controllers

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bilingui/backend/config"
	"bilingui/backend/models"
	"bilingui/backend/services"
	"bilingui/backend/utils"
)

type AudioController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Speech *services.SpeechEngine
}

func NewAudioController(db *gorm.DB, cfg *config.Config) *AudioController {
	return &AudioController{
		DB:     db,
		Cfg:    cfg,
		Speech: services.NewSpeechEngine(&services.SimulatedTranscriber{}),
	}
}

// [+] SubmitAudio godoc
// @Summary Submit a practice recording
// @Description Stores the audio, transcribes it and scores pronunciation against the target phrase
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio recording"
// @Param target_phrase formData string true "Phrase being practiced"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /audio/submit [post]
func (ac *AudioController) SubmitAudio(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	file, err := c.FormFile("audio")
	if err != nil {
		return utils.BadRequest(c, "Missing audio file")
	}
	if !services.ValidateAudioFilename(file.Filename) {
		return utils.BadRequest(c, "Unsupported audio format")
	}
	if file.Size == 0 {
		return utils.BadRequest(c, "Empty audio file")
	}
	if file.Size > int64(ac.Cfg.MaxUploadMB)*1024*1024 {
		return utils.BadRequest(c, fmt.Sprintf("File exceeds %dMB limit", ac.Cfg.MaxUploadMB))
	}

	targetPhrase := c.FormValue("target_phrase")
	if targetPhrase == "" {
		return utils.BadRequest(c, "Missing target_phrase")
	}
	language := c.FormValue("language")
	if language == "" {
		language = "en"
	}

	// Stored under a fresh name so user-supplied filenames never touch disk.
	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	audioPath := filepath.Join(ac.Cfg.UploadDir, storedName)
	if err := c.SaveFile(file, audioPath); err != nil {
		return utils.InternalServerError(c, "Could not store audio file")
	}

	transcriber := &services.SimulatedTranscriber{TargetPhrase: targetPhrase}
	engine := services.NewSpeechEngine(transcriber)

	transcription, err := transcriber.Transcribe(c.Context(), audioPath, language)
	if err != nil {
		return utils.InternalServerError(c, "Transcription failed")
	}

	quality := engine.AssessAudioQuality(audioPath)
	scores := engine.ScoreSpeech(transcription.Text, targetPhrase, quality)
	suggestions := engine.ImprovementSuggestions(scores, transcription.Text, targetPhrase)

	submission := models.AudioSubmission{
		UserID:        userID,
		AudioPath:     audioPath,
		TargetPhrase:  targetPhrase,
		Transcription: transcription.Text,
		Feedback:      services.FeedbackHeadline(scores.OverallScore),
		Score:         scores.OverallScore,
	}
	if err := ac.DB.Create(&submission).Error; err != nil {
		return utils.InternalServerError(c, "Could not store submission")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"submission_id": submission.ID,
		"transcription": transcription,
		"quality":       quality,
		"scores":        scores,
		"feedback":      submission.Feedback,
		"suggestions":   suggestions,
	})
}

// Transcribe returns the transcript with word timing and speaking metrics
// without persisting a submission.
func (ac *AudioController) Transcribe(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return utils.BadRequest(c, "Missing audio file")
	}
	if !services.ValidateAudioFilename(file.Filename) {
		return utils.BadRequest(c, "Unsupported audio format")
	}

	language := c.FormValue("language")
	if language == "" {
		language = "en"
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	audioPath := filepath.Join(ac.Cfg.UploadDir, storedName)
	if err := c.SaveFile(file, audioPath); err != nil {
		return utils.InternalServerError(c, "Could not store audio file")
	}

	transcription, err := ac.Speech.Transcriber.Transcribe(c.Context(), audioPath, language)
	if err != nil {
		return utils.InternalServerError(c, "Transcription failed")
	}

	metrics := ac.Speech.SpeakingMetricsFor(transcription)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"transcription":           transcription.Text,
		"confidence":              transcription.Confidence,
		"language_detected":       transcription.LanguageDetected,
		"word_timestamps":         transcription.Words,
		"speaking_metrics":        metrics,
		"improvement_suggestions": ac.Speech.TranscriptionSuggestions(metrics),
	})
}

type PronunciationInput struct {
	Text           string `json:"text" validate:"required"`
	NativeLanguage string `json:"native_language"`
}

func (ac *AudioController) AnalyzePronunciation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input PronunciationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	native := input.NativeLanguage
	if native == "" {
		var user models.User
		if err := ac.DB.First(&user, userID).Error; err == nil {
			native = user.NativeLanguage
		}
	}

	analysis := ac.Speech.AnalyzePronunciation(input.Text, native)
	return utils.Success(c, fiber.StatusOK, analysis)
}

// LiveFeedback scores a raw audio chunk for real-time UI hints. The chunk
// arrives as the request body, not multipart.
func (ac *AudioController) LiveFeedback(c *fiber.Ctx) error {
	feedback := ac.Speech.LiveFeedback(len(c.Body()))
	return utils.Success(c, fiber.StatusOK, feedback)
}

func (ac *AudioController) GetStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var submissions []models.AudioSubmission
	if err := ac.DB.Where("user_id = ?", userID).Find(&submissions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query submissions")
	}

	var scoreSum, best float64
	for _, s := range submissions {
		scoreSum += s.Score
		if s.Score > best {
			best = s.Score
		}
	}
	average := 0.0
	if len(submissions) > 0 {
		average = scoreSum / float64(len(submissions))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"total_submissions": len(submissions),
		"average_score":     average,
		"best_score":        best,
	})
}
