package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/repository"
)

// InteractionService 评分、评论、列表条目、关注。
// 每个创建操作在同一事务内追加动态，每个删除操作在同一事务内清理动态。
type InteractionService struct {
	tx           *repository.Transactor
	resolver     *repository.TargetResolver
	userRepo     *repository.UserRepository
	ratingRepo   *repository.RatingRepository
	reviewRepo   *repository.ReviewRepository
	listRepo     *repository.ListRepository
	followRepo   *repository.FollowRepository
	likeRepo     *repository.LikeRepository
	replyRepo    *repository.ReplyRepository
	activityRepo *repository.ActivityRepository
	hydrator     *Hydrator
}

func NewInteractionService(
	tx *repository.Transactor,
	resolver *repository.TargetResolver,
	userRepo *repository.UserRepository,
	ratingRepo *repository.RatingRepository,
	reviewRepo *repository.ReviewRepository,
	listRepo *repository.ListRepository,
	followRepo *repository.FollowRepository,
	likeRepo *repository.LikeRepository,
	replyRepo *repository.ReplyRepository,
	activityRepo *repository.ActivityRepository,
	hydrator *Hydrator,
) *InteractionService {
	return &InteractionService{
		tx:           tx,
		resolver:     resolver,
		userRepo:     userRepo,
		ratingRepo:   ratingRepo,
		reviewRepo:   reviewRepo,
		listRepo:     listRepo,
		followRepo:   followRepo,
		likeRepo:     likeRepo,
		replyRepo:    replyRepo,
		activityRepo: activityRepo,
		hydrator:     hydrator,
	}
}

// requireContent 校验内容引用存在
func requireContent(resolver *repository.TargetResolver, ref model.TargetRef) error {
	if err := ref.Within(model.ContentKinds...); err != nil {
		return &ValidationError{Field: "content_type", Message: err.Error()}
	}
	ok, err := resolver.Exists(ref)
	if err != nil {
		return err
	}
	if !ok {
		return ErrContentNotFound
	}
	return nil
}

// RecordRating 评分。同一用户对同一内容重复评分只更新分数；
// 动态只在该评分还没有动态时追加。返回的 created 表示是否新建
func (s *InteractionService) RecordRating(userID int64, ref model.TargetRef, score int) (*dto.RatingItem, bool, error) {
	if score < model.MinScore || score > model.MaxScore {
		return nil, false, newValidationError("score", "score must be between %d and %d", model.MinScore, model.MaxScore)
	}

	var (
		rating  *model.Rating
		created bool
	)
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		if err := requireContent(s.resolver.WithTx(tx), ref); err != nil {
			return err
		}

		var err error
		rating, created, err = s.ratingRepo.WithTx(tx).Upsert(userID, ref, score)
		if err != nil {
			return err
		}

		activities := s.activityRepo.WithTx(tx)
		logged, err := activities.ExistsForTarget(rating.Ref())
		if err != nil {
			return err
		}
		if !logged {
			if _, err := activities.Append(userID, model.ActivityRating, rating.Ref()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	full, err := s.ratingRepo.GetByIDWithUser(rating.ID)
	if err != nil {
		return nil, false, err
	}
	item, err := s.hydrator.RatingItem(full, userID)
	if err != nil {
		return nil, false, err
	}
	return item, created, nil
}

// ListRatings 用户自己的评分
func (s *InteractionService) ListRatings(userID int64, page, pageSize int) ([]*dto.RatingItem, int64, error) {
	ratings, total, err := s.ratingRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.RatingItem, 0, len(ratings))
	for _, r := range ratings {
		item, err := s.hydrator.RatingItem(r, userID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

// DeleteRating 删除评分，连同点赞、回复和动态
func (s *InteractionService) DeleteRating(userID, ratingID int64) error {
	return s.tx.Transaction(func(tx *gorm.DB) error {
		ratings := s.ratingRepo.WithTx(tx)
		rating, err := ratings.GetByID(ratingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInteractionNotFound
			}
			return err
		}
		if rating.UserID != userID {
			return ErrPermissionDenied
		}

		if err := s.dropSocial(tx, rating.Ref()); err != nil {
			return err
		}
		if err := s.activityRepo.WithTx(tx).DeleteByTarget(rating.Ref()); err != nil {
			return err
		}
		return ratings.Delete(rating.ID)
	})
}

// RecordReview 发表评论，每次都新增一行并追加一条动态
func (s *InteractionService) RecordReview(userID int64, ref model.TargetRef, text string) (*dto.ReviewItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("text", "text must not be empty")
	}

	review := &model.Review{
		UserID:     userID,
		TargetKind: ref.Kind,
		TargetID:   ref.ID,
		Text:       text,
	}
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		if err := requireContent(s.resolver.WithTx(tx), ref); err != nil {
			return err
		}
		if err := s.reviewRepo.WithTx(tx).Create(review); err != nil {
			return err
		}
		_, err := s.activityRepo.WithTx(tx).Append(userID, model.ActivityReview, review.Ref())
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.GetReview(userID, review.ID)
}

// GetReview 获取单条评论
func (s *InteractionService) GetReview(viewerID, reviewID int64) (*dto.ReviewItem, error) {
	review, err := s.reviewRepo.GetByIDWithUser(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInteractionNotFound
		}
		return nil, err
	}
	return s.hydrator.ReviewItem(review, viewerID)
}

// ListReviews 用户自己的评论
func (s *InteractionService) ListReviews(userID int64, page, pageSize int) ([]*dto.ReviewItem, int64, error) {
	reviews, total, err := s.reviewRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.ReviewItem, 0, len(reviews))
	for _, r := range reviews {
		item, err := s.hydrator.ReviewItem(r, userID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

// UpdateReview 修改评论内容，不产生动态
func (s *InteractionService) UpdateReview(userID, reviewID int64, text string) (*dto.ReviewItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("text", "text must not be empty")
	}

	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInteractionNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrPermissionDenied
	}

	if err := s.reviewRepo.UpdateText(review, text); err != nil {
		return nil, err
	}
	return s.GetReview(userID, reviewID)
}

// DeleteReview 删除评论，连同点赞、回复和动态
func (s *InteractionService) DeleteReview(userID, reviewID int64) error {
	return s.tx.Transaction(func(tx *gorm.DB) error {
		reviews := s.reviewRepo.WithTx(tx)
		review, err := reviews.GetByID(reviewID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInteractionNotFound
			}
			return err
		}
		if review.UserID != userID {
			return ErrPermissionDenied
		}

		if err := s.dropSocial(tx, review.Ref()); err != nil {
			return err
		}
		if err := s.activityRepo.WithTx(tx).DeleteByTarget(review.Ref()); err != nil {
			return err
		}
		return reviews.Delete(review.ID)
	})
}

func (s *InteractionService) dropSocial(tx *gorm.DB, ref model.TargetRef) error {
	if err := s.likeRepo.WithTx(tx).DeleteByTarget(ref); err != nil {
		return err
	}
	_, err := s.replyRepo.WithTx(tx).DeleteByTarget(ref)
	return err
}

// AddListItem 把内容加入列表。已在列表中时返回原条目，不产生动态
func (s *InteractionService) AddListItem(userID, listID int64, ref model.TargetRef) (*dto.ListItemDetail, bool, error) {
	var (
		item    *model.ListItem
		created bool
	)
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		lists := s.listRepo.WithTx(tx)
		list, err := lists.GetByID(listID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListNotFound
			}
			return err
		}
		if list.UserID != userID {
			return ErrPermissionDenied
		}
		if err := requireContent(s.resolver.WithTx(tx), ref); err != nil {
			return err
		}

		item, err = lists.GetItemByTarget(listID, ref)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		item = &model.ListItem{ListID: listID, TargetKind: ref.Kind, TargetID: ref.ID}
		if err := lists.AddItem(item); err != nil {
			if !repository.IsDuplicateKey(err) {
				return err
			}
			item, err = lists.LockItemByTarget(listID, ref)
			return err
		}

		created = true
		_, err = s.activityRepo.WithTx(tx).Append(userID, model.ActivityListAdd, item.Ref())
		return err
	})
	if err != nil {
		return nil, false, err
	}

	content, err := s.hydrator.ContentSummary(item.Target())
	if err != nil {
		return nil, false, err
	}
	return buildListItemDetail(item, content), created, nil
}

// RemoveListItem 从列表移除条目及其动态
func (s *InteractionService) RemoveListItem(userID, itemID int64) error {
	return s.tx.Transaction(func(tx *gorm.DB) error {
		lists := s.listRepo.WithTx(tx)
		item, err := lists.GetItem(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInteractionNotFound
			}
			return err
		}
		if item.List == nil || item.List.UserID != userID {
			return ErrPermissionDenied
		}

		if err := s.activityRepo.WithTx(tx).DeleteByTarget(item.Ref()); err != nil {
			return err
		}
		return lists.DeleteItem(item.ID)
	})
}

// Follow 关注用户。重复关注返回 ErrAlreadyFollowing
func (s *InteractionService) Follow(followerID, followingID int64) (*dto.FollowItem, error) {
	if followerID == followingID {
		return nil, ErrCannotFollowSelf
	}

	follow := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		exists, err := s.userRepo.WithTx(tx).Exists(followingID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}

		if err := s.followRepo.WithTx(tx).Create(follow); err != nil {
			if repository.IsDuplicateKey(err) {
				return ErrAlreadyFollowing
			}
			return err
		}
		_, err = s.activityRepo.WithTx(tx).Append(followerID, model.ActivityFollow, follow.Ref())
		return err
	})
	if err != nil {
		return nil, err
	}

	full, err := s.followRepo.GetByID(follow.ID)
	if err != nil {
		return nil, err
	}
	return buildFollowItem(full), nil
}

// ListFollows 用户的关注列表
func (s *InteractionService) ListFollows(userID int64) ([]*dto.FollowItem, error) {
	follows, err := s.followRepo.ListByFollower(userID)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.FollowItem, 0, len(follows))
	for _, f := range follows {
		items = append(items, buildFollowItem(f))
	}
	return items, nil
}

// Unfollow 取消关注，连同动态
func (s *InteractionService) Unfollow(userID, followID int64) error {
	return s.tx.Transaction(func(tx *gorm.DB) error {
		follows := s.followRepo.WithTx(tx)
		follow, err := follows.GetByID(followID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInteractionNotFound
			}
			return err
		}
		if follow.FollowerID != userID {
			return ErrPermissionDenied
		}

		if err := s.activityRepo.WithTx(tx).DeleteByTarget(follow.Ref()); err != nil {
			return err
		}
		return follows.Delete(follow.ID)
	})
}

func buildFollowItem(f *model.Follow) *dto.FollowItem {
	return &dto.FollowItem{
		ID:               f.ID,
		Following:        f.FollowingID,
		FollowingDetails: buildUserBrief(f.Following),
		CreatedAt:        formatTime(f.CreatedAt),
	}
}

func buildListItemDetail(item *model.ListItem, content *dto.ContentSummary) *dto.ListItemDetail {
	return &dto.ListItemDetail{
		ID:             item.ID,
		ListID:         item.ListID,
		ContentDetails: content,
		AddedAt:        formatTime(item.AddedAt),
	}
}
