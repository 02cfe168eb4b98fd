package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) WithTx(tx *gorm.DB) *LikeRepository {
	return &LikeRepository{db: tx}
}

// Create 创建点赞，已点赞时返回 gorm.ErrDuplicatedKey
func (r *LikeRepository) Create(userID int64, target model.TargetRef) error {
	return insertOnce(r.db, &model.Like{
		UserID:     userID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
	})
}

// Delete 取消点赞，返回删除的行数
func (r *LikeRepository) Delete(userID int64, target model.TargetRef) (int64, error) {
	result := r.db.Scopes(targetScope(target)).Where("user_id = ?", userID).Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

// Exists 检查是否已点赞
func (r *LikeRepository) Exists(userID int64, target model.TargetRef) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Scopes(targetScope(target)).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// Count 目标的点赞数
func (r *LikeRepository) Count(target model.TargetRef) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Scopes(targetScope(target)).Count(&count).Error
	return count, err
}

// DeleteByTarget 删除目标上的全部点赞
func (r *LikeRepository) DeleteByTarget(target model.TargetRef) error {
	return r.db.Scopes(targetScope(target)).Delete(&model.Like{}).Error
}
