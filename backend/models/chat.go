package models

import "gorm.io/gorm"

type ChatLog struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	LessonID *uint
	Message  string `gorm:"type:text"`
	Response string `gorm:"type:text"`
}
