package profile

import "time"

// Profile is the social-facing entity, one per actor. The unique index on
// UserID is what turns a second create into a conflict.
type Profile struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;size:64" json:"user_id"`
	Bio       string    `gorm:"type:text" json:"bio"`
	ImageKey  string    `gorm:"size:512" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateReq struct {
	Bio string `json:"bio" validate:"required"`
}

type UpdateReq struct {
	Bio string `json:"bio" validate:"required"`
}

// ListRow carries the per-query aggregate counts. The counts are derived in
// SQL and never persisted.
type ListRow struct {
	Profile
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	PostsCount     int64 `json:"posts_count"`
}

type DetailResp struct {
	Profile
	Followers []uint64 `json:"followers"`
	Following []uint64 `json:"following"`
	Posts     []uint64 `json:"posts"`
}

type Filter struct {
	UserID string
	Bio    string
}
