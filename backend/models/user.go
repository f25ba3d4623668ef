package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email          string `gorm:"unique;not null"`
	PasswordHash   string `gorm:"not null" json:"-"`
	Name           string `gorm:"not null"`
	AvatarURL      string
	Role           string `gorm:"default:student"` // student, admin, native
	NativeLanguage string `gorm:"default:pt"`
	TargetLanguage string `gorm:"default:en"`
}

// UserStats is the persistent gamification state for a user. One row per user.
type UserStats struct {
	gorm.Model
	UserID               uint `gorm:"uniqueIndex"`
	TotalXP              int  `gorm:"default:0"`
	Level                int  `gorm:"default:1"`
	StreakDays           int  `gorm:"default:0"`
	LongestStreak        int  `gorm:"default:0"`
	LastActive           time.Time
	LessonsCompleted     int `gorm:"default:0"`
	AchievementsUnlocked int `gorm:"default:0"`
}

type UnlockedAchievement struct {
	gorm.Model
	UserID        uint   `gorm:"index"`
	AchievementID string `gorm:"index"`
	UnlockedAt    time.Time
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
