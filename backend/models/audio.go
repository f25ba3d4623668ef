package models

import "gorm.io/gorm"

type AudioSubmission struct {
	gorm.Model
	UserID        uint `gorm:"index"`
	AudioPath     string
	TargetPhrase  string
	Transcription string `gorm:"type:text"`
	Feedback      string `gorm:"type:text"`
	Score         float64
}
