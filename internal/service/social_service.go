package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/repository"
)

const (
	LikeStatusLiked   = "liked"
	LikeStatusUnliked = "unliked"
)

// SocialService 评分/评论上的点赞与回复，不产生动态
type SocialService struct {
	tx        *repository.Transactor
	resolver  *repository.TargetResolver
	likeRepo  *repository.LikeRepository
	replyRepo *repository.ReplyRepository
}

func NewSocialService(
	tx *repository.Transactor,
	resolver *repository.TargetResolver,
	likeRepo *repository.LikeRepository,
	replyRepo *repository.ReplyRepository,
) *SocialService {
	return &SocialService{
		tx:        tx,
		resolver:  resolver,
		likeRepo:  likeRepo,
		replyRepo: replyRepo,
	}
}

// resolveLikeTarget 评论 ID 找不到时按同一 ID 回退到评分
func resolveLikeTarget(resolver *repository.TargetResolver, ref model.TargetRef) (model.TargetRef, error) {
	candidates := []model.TargetRef{ref}
	if ref.Kind == model.KindReview {
		candidates = append(candidates, model.TargetRef{Kind: model.KindRating, ID: ref.ID})
	}

	for _, c := range candidates {
		target, ok, err := resolver.Resolve(c)
		if err != nil {
			return model.TargetRef{}, err
		}
		if ok {
			return target.Ref(), nil
		}
	}
	return model.TargetRef{}, ErrTargetNotFound
}

// ToggleLike 切换点赞：已点赞则取消，否则点赞
func (s *SocialService) ToggleLike(actorID int64, ref model.TargetRef) (*dto.LikeResponse, error) {
	if err := ref.Within(model.SocialKinds...); err != nil {
		return nil, &ValidationError{Field: "content_type", Message: err.Error()}
	}

	resp := &dto.LikeResponse{}
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		target, err := resolveLikeTarget(s.resolver.WithTx(tx), ref)
		if err != nil {
			return err
		}

		likes := s.likeRepo.WithTx(tx)
		removed, err := likes.Delete(actorID, target)
		if err != nil {
			return err
		}

		if removed > 0 {
			resp.Status = LikeStatusUnliked
		} else {
			// 并发请求已插入时同样视为已点赞
			if err := likes.Create(actorID, target); err != nil && !repository.IsDuplicateKey(err) {
				return err
			}
			resp.Status = LikeStatusLiked
		}

		resp.LikesCount, err = likes.Count(target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddReply 回复评分或评论
func (s *SocialService) AddReply(authorID int64, ref model.TargetRef, text string) (*dto.ReplyItem, error) {
	if err := ref.Within(model.SocialKinds...); err != nil {
		return nil, &ValidationError{Field: "content_type", Message: err.Error()}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("text", "text must not be empty")
	}

	ok, err := s.resolver.Exists(ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTargetNotFound
	}

	reply := &model.Reply{
		UserID:     authorID,
		TargetKind: ref.Kind,
		TargetID:   ref.ID,
		Text:       text,
	}
	if err := s.replyRepo.Create(reply); err != nil {
		return nil, err
	}

	full, err := s.replyRepo.GetByIDWithUser(reply.ID)
	if err != nil {
		return nil, err
	}
	return buildReplyItem(full), nil
}

// DeleteReply 删除回复（仅作者）
func (s *SocialService) DeleteReply(userID, replyID int64) error {
	reply, err := s.replyRepo.GetByID(replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInteractionNotFound
		}
		return err
	}
	if reply.UserID != userID {
		return ErrPermissionDenied
	}
	return s.replyRepo.Delete(replyID)
}
