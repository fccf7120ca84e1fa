package post

import (
	"time"

	"social-service/internal/comment"
	"social-service/internal/tag"
)

type Post struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"size:64;index" json:"user_id"`
	ProfileID   uint64     `gorm:"index" json:"profile_id"`
	Title       string     `gorm:"size:255" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	ImageKey    string     `gorm:"size:512" json:"image"`
	Visible     bool       `json:"is_visible"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Tags        []tag.Tag  `gorm:"many2many:post_tags" json:"-"`
}

type CreateReq struct {
	Title       string     `json:"title" validate:"max=255"`
	Content     string     `json:"content" validate:"required"`
	Visible     bool       `json:"is_visible"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Hashtags    []string   `json:"hashtags"`
}

type UpdateReq struct {
	Title    string   `json:"title" validate:"max=255"`
	Content  string   `json:"content" validate:"required"`
	Visible  bool     `json:"is_visible"`
	Hashtags []string `json:"hashtags"`
}

type ListRow struct {
	Post
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
}

type DetailResp struct {
	Post
	Likes    []string          `json:"likes"`
	Comments []comment.Comment `json:"comments"`
	Hashtags []string          `json:"hashtags"`
}

type Filter struct {
	Title     string
	TagIDs    []uint64
	ProfileID uint64
	UserID    string
	LikedBy   string
}
