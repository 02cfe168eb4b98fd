package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/qs3c/shelf_server/config"
	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/repository"
)

// FeedService 动态流查询与解析
type FeedService struct {
	activityRepo *repository.ActivityRepository
	followRepo   *repository.FollowRepository
	userRepo     *repository.UserRepository
	hydrator     *Hydrator
	cfg          config.FeedConfig
}

func NewFeedService(
	activityRepo *repository.ActivityRepository,
	followRepo *repository.FollowRepository,
	userRepo *repository.UserRepository,
	hydrator *Hydrator,
	cfg config.FeedConfig,
) *FeedService {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.HydrationWorkers <= 0 {
		cfg.HydrationWorkers = 8
	}
	return &FeedService{
		activityRepo: activityRepo,
		followRepo:   followRepo,
		userRepo:     userRepo,
		hydrator:     hydrator,
		cfg:          cfg,
	}
}

// NormalizePage 规范化分页参数
func (s *FeedService) NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}
	return page, pageSize
}

// Feed 自己与关注的人的动态，最新的在前
func (s *FeedService) Feed(ctx context.Context, viewerID int64, page, pageSize int) ([]*dto.ActivityItem, int64, error) {
	following, err := s.followRepo.FollowingIDs(viewerID)
	if err != nil {
		return nil, 0, err
	}
	userIDs := append(following, viewerID)

	return s.page(ctx, viewerID, userIDs, page, pageSize)
}

// UserActivities 单个用户的动态
func (s *FeedService) UserActivities(ctx context.Context, viewerID, userID int64, page, pageSize int) ([]*dto.ActivityItem, int64, error) {
	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrUserNotFound
	}

	return s.page(ctx, viewerID, []int64{userID}, page, pageSize)
}

func (s *FeedService) page(ctx context.Context, viewerID int64, userIDs []int64, page, pageSize int) ([]*dto.ActivityItem, int64, error) {
	page, pageSize = s.NormalizePage(page, pageSize)

	activities, total, err := s.activityRepo.ListByUsers(userIDs, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.hydrate(ctx, activities, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// hydrate 并发解析一页动态，结果保持原顺序
func (s *FeedService) hydrate(ctx context.Context, activities []*model.Activity, viewerID int64) ([]*dto.ActivityItem, error) {
	items := make([]*dto.ActivityItem, len(activities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.HydrationWorkers)

	for i, a := range activities {
		i, a := i, a
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items[i] = s.hydrator.ActivityItem(a, viewerID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
