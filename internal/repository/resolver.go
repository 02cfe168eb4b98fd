package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

// TargetResolver 将 TargetRef 解析为具体实体
type TargetResolver struct {
	db *gorm.DB
}

func NewTargetResolver(db *gorm.DB) *TargetResolver {
	return &TargetResolver{db: db}
}

func (r *TargetResolver) WithTx(tx *gorm.DB) *TargetResolver {
	return &TargetResolver{db: tx}
}

// Resolve 解析引用。目标不存在时返回 (nil, false, nil)，只有存储错误才返回 error
func (r *TargetResolver) Resolve(ref model.TargetRef) (model.Target, bool, error) {
	var (
		target model.Target
		err    error
	)

	switch ref.Kind {
	case model.KindBook:
		var book model.Book
		err = r.db.Where("id = ?", ref.ID).First(&book).Error
		target = &book
	case model.KindMovie:
		var movie model.Movie
		err = r.db.Where("id = ?", ref.ID).First(&movie).Error
		target = &movie
	case model.KindRating:
		var rating model.Rating
		err = r.db.Preload("User").Where("id = ?", ref.ID).First(&rating).Error
		target = &rating
	case model.KindReview:
		var review model.Review
		err = r.db.Preload("User").Where("id = ?", ref.ID).First(&review).Error
		target = &review
	case model.KindListItem:
		var item model.ListItem
		err = r.db.Preload("List").Where("id = ?", ref.ID).First(&item).Error
		target = &item
	case model.KindFollow:
		var follow model.Follow
		err = r.db.Preload("Following").Where("id = ?", ref.ID).First(&follow).Error
		target = &follow
	default:
		return nil, false, fmt.Errorf("resolve %s: unknown target kind", ref)
	}

	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resolve %s: %w", ref, err)
	}
	return target, true, nil
}

// Exists 检查引用的目标是否存在
func (r *TargetResolver) Exists(ref model.TargetRef) (bool, error) {
	_, ok, err := r.Resolve(ref)
	return ok, err
}
