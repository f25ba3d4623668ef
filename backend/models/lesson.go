package models

import "gorm.io/gorm"

type Lesson struct {
	gorm.Model
	Language string `gorm:"index"`
	Level    string `gorm:"index"` // beginner, intermediate, advanced
	Title    string
	Type     string // reading, listening, speaking, question, chat
	Content  string
	Answer   string // expected answer for question lessons
}
