package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) GetByIDWithUser(id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("User").Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateText 修改评论内容（updated_at 自动刷新）
func (r *ReviewRepository) UpdateText(review *model.Review, text string) error {
	return r.db.Model(review).Update("text", text).Error
}

func (r *ReviewRepository) ListByUser(userID int64, page, pageSize int) ([]*model.Review, int64, error) {
	var reviews []*model.Review
	var total int64

	query := r.db.Model(&model.Review{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at DESC, id DESC").Scopes(paginate(page, pageSize)).Find(&reviews).Error
	return reviews, total, err
}

// ListByTarget 获取内容下的评论，最新的在前
func (r *ReviewRepository) ListByTarget(target model.TargetRef) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("User").Scopes(targetScope(target)).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}

// CountsByTarget 按目标分组的评论数
func (r *ReviewRepository) CountsByTarget(kind model.TargetKind) (map[int64]int64, error) {
	var rows []struct {
		TargetID int64
		Count    int64
	}
	err := r.db.Model(&model.Review{}).
		Select("target_id, COUNT(*) AS count").
		Where("target_kind = ?", kind).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64]int64, len(rows))
	for _, row := range rows {
		result[row.TargetID] = row.Count
	}
	return result, nil
}

func (r *ReviewRepository) Delete(id int64) error {
	return r.db.Delete(&model.Review{}, id).Error
}
