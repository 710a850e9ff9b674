package model

import "time"

const (
	TitleMaxLen = 50
	BodyMaxLen  = 300
)

type Post struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:50;not null" json:"title"`
	Body  string `gorm:"size:300;not null" json:"body"`
	// Set once at creation time (Asia/Tokyo) and never refreshed on update.
	CreatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"created_at"`
}
