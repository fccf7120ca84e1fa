package follow

import "time"

// Follow is a directed edge between two profiles. The composite primary key
// is the uniqueness invariant: re-following is a conflict, not a second row.
type Follow struct {
	FollowerID  uint64    `gorm:"primaryKey" json:"follower"`
	FollowingID uint64    `gorm:"primaryKey" json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}
