package like

import "time"

type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"uniqueIndex:idx_post_user" json:"post_id"`
	UserID    string    `gorm:"uniqueIndex:idx_post_user;size:64" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
