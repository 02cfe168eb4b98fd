package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/config"
	"github.com/qs3c/shelf_server/internal/repository"
	"github.com/qs3c/shelf_server/internal/testutil"
)

// testEnv 一套共享同一测试库的服务
type testEnv struct {
	db           *gorm.DB
	interactions *InteractionService
	social       *SocialService
	feed         *FeedService
	lists        *ListService
	content      *ContentService
	users        *UserService
}

func setupEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	tx := repository.NewTransactor(db)
	resolver := repository.NewTargetResolver(db)
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	listRepo := repository.NewListRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	hydrator := NewHydrator(resolver, likeRepo, replyRepo, 200)

	env := &testEnv{
		db: db,
		interactions: NewInteractionService(tx, resolver, userRepo, ratingRepo, reviewRepo,
			listRepo, followRepo, likeRepo, replyRepo, activityRepo, hydrator),
		social:  NewSocialService(tx, resolver, likeRepo, replyRepo),
		feed:    NewFeedService(activityRepo, followRepo, userRepo, hydrator, config.FeedConfig{HydrationWorkers: 4}),
		lists:   NewListService(tx, listRepo, activityRepo, hydrator),
		content: NewContentService(resolver, contentRepo, ratingRepo, reviewRepo, listRepo),
		users:   NewUserService(userRepo, followRepo),
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return env, cleanup
}
