package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"bilingui/backend/config"
	"bilingui/backend/routes"
	"bilingui/backend/utils"
)

// newTestApp wires the full route table without a database. Handlers that
// never touch the DB can be exercised directly; everything else is covered
// by the middleware tests here.
func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	cfg := &config.Config{JWTSecret: "testsecret", MaxUploadMB: 50, UploadDir: t.TempDir()}

	app := fiber.New()
	routes.SetupRoutes(app, nil, cfg)

	token, err := utils.GenerateJWTToken(1, cfg)
	assert.NoError(t, err)
	return app, token
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	paths := []struct{ method, path string }{
		{"GET", "/api/progress"},
		{"POST", "/api/chat/"},
		{"GET", "/api/analytics/learning-profile"},
		{"POST", "/api/audio/feedback"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, p.path)
	}
}

func TestCoachingEndpoint(t *testing.T) {
	app, token := newTestApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"score":    95,
		"duration": 20,
	})
	req := httptest.NewRequest("POST", "/api/analytics/coaching", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			FocusArea         string `json:"focus_area"`
			ImmediateFeedback string `json:"immediate_feedback"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "challenge", envelope.Data.FocusArea)
	assert.NotEmpty(t, envelope.Data.ImmediateFeedback)
}

func TestTranscribeEndpointIncludesSpeakingMetrics(t *testing.T) {
	app, token := newTestApp(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "sample.wav")
	assert.NoError(t, err)
	_, err = part.Write([]byte("fake wav bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.WriteField("language", "en"))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/audio/transcribe", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	for _, key := range []string{
		"transcription", "confidence", "language_detected",
		"word_timestamps", "speaking_metrics", "improvement_suggestions",
	} {
		assert.Contains(t, envelope.Data, key)
	}

	var metrics struct {
		WordsPerMinute float64 `json:"words_per_minute"`
		PauseFrequency string  `json:"pause_frequency"`
		SpeechClarity  string  `json:"speech_clarity"`
	}
	assert.NoError(t, json.Unmarshal(envelope.Data["speaking_metrics"], &metrics))
	assert.Greater(t, metrics.WordsPerMinute, 0.0)
	assert.NotEmpty(t, metrics.PauseFrequency)
	assert.NotEmpty(t, metrics.SpeechClarity)
}

func TestLiveAudioFeedbackEndpoint(t *testing.T) {
	app, token := newTestApp(t)

	// Empty body simulates a dropped microphone chunk.
	req := httptest.NewRequest("POST", "/api/audio/feedback", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var envelope struct {
		Data struct {
			ClarityStatus string `json:"clarity_status"`
			InstantScore  float64 `json:"instant_score"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "needs_clarity", envelope.Data.ClarityStatus)
	assert.Greater(t, envelope.Data.InstantScore, 0.0)
}
