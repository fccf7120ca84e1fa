package migrate

import (
	"social-service/internal/comment"
	"social-service/internal/follow"
	"social-service/internal/like"
	"social-service/internal/post"
	"social-service/internal/profile"
	"social-service/internal/scheduler"
	"social-service/internal/shared/db"
	"social-service/internal/tag"
)

func AutoMigrateAll(store *db.Store) error {
	return store.Base.AutoMigrate(
		&profile.Profile{},
		&follow.Follow{},
		&tag.Tag{},
		&post.Post{},
		&like.Like{},
		&comment.Comment{},
		&scheduler.Job{},
	)
}
