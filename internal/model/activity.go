package model

import "time"

const (
	ActivityPostCreated = "post.created"
	ActivityPostUpdated = "post.updated"
	ActivityPostDeleted = "post.deleted"
)

// Activity is an audit row recorded for every post mutation. Rows are
// published to RabbitMQ by the service layer and persisted asynchronously
// by the activity worker.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Actor     string    `gorm:"size:30;not null" json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}
