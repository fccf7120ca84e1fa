package scheduler

import "time"

const KindPublishPost = "publish_post"

// Job is a durable deferred unit of work. Rows survive restarts, so delivery
// is at-least-once: a job is only marked done after its effect is applied.
type Job struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:32;index" json:"kind"`
	PostID    uint64    `gorm:"index" json:"post_id"`
	FireAt    time.Time `gorm:"index" json:"fire_at"`
	Done      bool      `gorm:"index;default:false" json:"done"`
	CreatedAt time.Time `json:"created_at"`
}
