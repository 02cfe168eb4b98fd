package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/repository"
)

const defaultExcerptLength = 200

// Hydrator 在读取时把引用链解析为展示结构。
// 任一环节的目标缺失都降级为 nil，不作为错误返回。
type Hydrator struct {
	resolver      *repository.TargetResolver
	likeRepo      *repository.LikeRepository
	replyRepo     *repository.ReplyRepository
	excerptLength int
}

func NewHydrator(
	resolver *repository.TargetResolver,
	likeRepo *repository.LikeRepository,
	replyRepo *repository.ReplyRepository,
	excerptLength int,
) *Hydrator {
	if excerptLength <= 0 {
		excerptLength = defaultExcerptLength
	}
	return &Hydrator{
		resolver:      resolver,
		likeRepo:      likeRepo,
		replyRepo:     replyRepo,
		excerptLength: excerptLength,
	}
}

// ContentSummary 解析内容引用，内容不存在时返回 nil
func (h *Hydrator) ContentSummary(ref model.TargetRef) (*dto.ContentSummary, error) {
	target, ok, err := h.resolver.Resolve(ref)
	if err != nil || !ok {
		return nil, err
	}
	return buildContentSummary(target), nil
}

// Replies 目标下的回复，按时间升序
func (h *Hydrator) Replies(ref model.TargetRef) ([]*dto.ReplyItem, error) {
	replies, err := h.replyRepo.ListByTarget(ref)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.ReplyItem, 0, len(replies))
	for _, r := range replies {
		items = append(items, buildReplyItem(r))
	}
	return items, nil
}

// likeState 点赞数及 viewer 是否点赞
func (h *Hydrator) likeState(ref model.TargetRef, viewerID int64) (int64, bool, error) {
	count, err := h.likeRepo.Count(ref)
	if err != nil {
		return 0, false, err
	}
	if viewerID == 0 || count == 0 {
		return count, false, nil
	}
	liked, err := h.likeRepo.Exists(viewerID, ref)
	if err != nil {
		return 0, false, err
	}
	return count, liked, nil
}

// RatingItem 评分及其点赞、回复
func (h *Hydrator) RatingItem(rating *model.Rating, viewerID int64) (*dto.RatingItem, error) {
	count, liked, err := h.likeState(rating.Ref(), viewerID)
	if err != nil {
		return nil, err
	}
	replies, err := h.Replies(rating.Ref())
	if err != nil {
		return nil, err
	}
	return &dto.RatingItem{
		ID:         rating.ID,
		User:       buildUserBrief(rating.User),
		Score:      rating.Score,
		LikesCount: count,
		IsLiked:    liked,
		CreatedAt:  formatTime(rating.CreatedAt),
		Replies:    replies,
	}, nil
}

// ReviewItem 评论及其点赞、回复
func (h *Hydrator) ReviewItem(review *model.Review, viewerID int64) (*dto.ReviewItem, error) {
	count, liked, err := h.likeState(review.Ref(), viewerID)
	if err != nil {
		return nil, err
	}
	replies, err := h.Replies(review.Ref())
	if err != nil {
		return nil, err
	}
	return &dto.ReviewItem{
		ID:         review.ID,
		User:       buildUserBrief(review.User),
		Text:       review.Text,
		LikesCount: count,
		IsLiked:    liked,
		CreatedAt:  formatTime(review.CreatedAt),
		UpdatedAt:  formatTime(review.UpdatedAt),
		Replies:    replies,
	}, nil
}

// ActivityItem 解析一条动态。存储错误只记录日志，details 置空
func (h *Hydrator) ActivityItem(a *model.Activity, viewerID int64) *dto.ActivityItem {
	item := &dto.ActivityItem{
		ID:                  a.ID,
		User:                buildUserBrief(a.User),
		ActivityType:        int(a.Kind),
		ActivityTypeDisplay: a.Kind.Display(),
		CreatedAt:           formatTime(a.CreatedAt),
		ObjectID:            a.TargetID,
	}

	details, err := h.activityDetails(a, viewerID)
	if err != nil {
		zap.L().Error("hydrate activity failed",
			zap.Int64("activity_id", a.ID),
			zap.String("target", a.Target().String()),
			zap.Error(err))
		return item
	}
	if details == nil {
		zap.L().Debug("activity target missing",
			zap.Int64("activity_id", a.ID),
			zap.String("target", a.Target().String()))
		return item
	}

	interactionID := a.TargetID
	item.InteractionID = &interactionID
	item.Details = details
	return item
}

func (h *Hydrator) activityDetails(a *model.Activity, viewerID int64) (interface{}, error) {
	if a.Kind.TargetKind() != a.TargetKind {
		return nil, fmt.Errorf("activity kind %d does not match target %s", a.Kind, a.Target())
	}

	target, ok, err := h.resolver.Resolve(a.Target())
	if err != nil || !ok {
		return nil, err
	}

	switch t := target.(type) {
	case *model.Rating:
		content, err := h.ContentSummary(t.Target())
		if err != nil || content == nil {
			return nil, err
		}
		rating, err := h.RatingItem(t, viewerID)
		if err != nil {
			return nil, err
		}
		return &dto.RatingActivityDetails{
			ContentType: content.ContentType,
			ContentData: content,
			Score:       t.Score,
			RatingID:    t.ID,
			LikesCount:  rating.LikesCount,
			IsLiked:     rating.IsLiked,
			Replies:     rating.Replies,
		}, nil

	case *model.Review:
		content, err := h.ContentSummary(t.Target())
		if err != nil || content == nil {
			return nil, err
		}
		review, err := h.ReviewItem(t, viewerID)
		if err != nil {
			return nil, err
		}
		return &dto.ReviewActivityDetails{
			ContentType:   content.ContentType,
			ContentData:   content,
			ReviewDetails: review,
			ReviewExcerpt: Excerpt(t.Text, h.excerptLength),
		}, nil

	case *model.ListItem:
		if t.List == nil {
			return nil, nil
		}
		content, err := h.ContentSummary(t.Target())
		if err != nil || content == nil {
			return nil, err
		}
		return &dto.ListAddActivityDetails{
			ContentType: content.ContentType,
			ContentData: content,
			ListName:    t.List.Name,
		}, nil

	case *model.Follow:
		if t.Following == nil {
			return nil, nil
		}
		return &dto.FollowActivityDetails{
			FollowedUser: buildUserBrief(t.Following),
		}, nil
	}

	return nil, nil
}

// Excerpt 截取前 n 个字符，超出时追加 "..."
func Excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func buildUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

func buildUserInfo(u *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: formatTime(u.CreatedAt),
	}
	if u.Email != nil {
		info.Email = *u.Email
	}
	return info
}

func buildReplyItem(r *model.Reply) *dto.ReplyItem {
	return &dto.ReplyItem{
		ID:        r.ID,
		User:      buildUserBrief(r.User),
		Text:      r.Text,
		CreatedAt: formatTime(r.CreatedAt),
	}
}

func buildContentSummary(target model.Target) *dto.ContentSummary {
	switch c := target.(type) {
	case *model.Book:
		return &dto.ContentSummary{
			ID:          c.ID,
			ContentType: model.KindBook.Display(),
			Title:       c.Title,
			Authors:     c.Authors,
			Description: c.Description,
			CoverURL:    c.CoverURL,
		}
	case *model.Movie:
		summary := &dto.ContentSummary{
			ID:          c.ID,
			ContentType: model.KindMovie.Display(),
			Title:       c.Title,
			Overview:    c.Overview,
			PosterPath:  c.PosterPath,
		}
		if c.ReleaseDate != nil {
			summary.ReleaseDate = c.ReleaseDate.Format("2006-01-02")
		}
		return summary
	}
	return nil
}
