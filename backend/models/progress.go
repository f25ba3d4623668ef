package models

import (
	"time"

	"gorm.io/gorm"
)

type Progress struct {
	gorm.Model
	UserID   uint `gorm:"index:idx_user_lesson,unique"`
	LessonID uint `gorm:"index:idx_user_lesson,unique"`

	PercentComplete float64 `gorm:"default:0"`
	IsCompleted     bool    `gorm:"default:false"`
	CurrentLevel    string  `gorm:"default:beginner"`

	XPGained    int `gorm:"default:0"`
	TotalXP     int `gorm:"default:0"`
	StreakCount int `gorm:"default:0"`

	AccuracyScore      float64 `gorm:"default:0"`
	FluencyScore       float64 `gorm:"default:0"`
	PronunciationScore float64 `gorm:"default:0"`

	TimeSpentMinutes int `gorm:"default:0"`
	SessionCount     int `gorm:"default:0"`

	StartedAt   time.Time
	CompletedAt *time.Time
}

// SessionData is one study session applied to a lesson's progress row.
type SessionData struct {
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
	Accuracy        float64 `json:"accuracy" validate:"gte=0,lte=100"`
	Fluency         float64 `json:"fluency" validate:"gte=0,lte=100"`
	Pronunciation   float64 `json:"pronunciation" validate:"gte=0,lte=100"`
	XPEarned        int     `json:"xp_earned" validate:"gte=0"`
	LessonCompleted bool    `json:"lesson_completed"`
}

// ApplySession folds a session into the row and flips completion at 100%.
func (p *Progress) ApplySession(s SessionData) {
	p.TimeSpentMinutes += s.DurationMinutes
	p.SessionCount++
	if s.Accuracy > 0 {
		p.AccuracyScore = s.Accuracy
	}
	if s.Fluency > 0 {
		p.FluencyScore = s.Fluency
	}
	if s.Pronunciation > 0 {
		p.PronunciationScore = s.Pronunciation
	}
	p.XPGained += s.XPEarned
	p.TotalXP += s.XPEarned
	if s.LessonCompleted {
		p.PercentComplete = 100
	}
	if p.PercentComplete >= 100 && !p.IsCompleted {
		p.IsCompleted = true
		now := time.Now()
		p.CompletedAt = &now
	}
}

type ProgressStatistics struct {
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	CompletionRate   float64 `json:"completion_rate"`
	TotalXP          int     `json:"total_xp"`
	TotalTimeMinutes int     `json:"total_time_minutes"`
	TotalTimeHours   float64 `json:"total_time_hours"`
	AverageAccuracy  float64 `json:"average_accuracy"`
	CurrentStreak    int     `json:"current_streak"`
}
