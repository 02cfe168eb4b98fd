package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

// orphanTables 动态目标类型对应的表
var orphanTables = map[model.TargetKind]string{
	model.KindRating:   "ratings",
	model.KindReview:   "reviews",
	model.KindListItem: "list_items",
	model.KindFollow:   "follows",
}

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) WithTx(tx *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: tx}
}

// Append 追加动态。目标已有动态时不插入，返回 false
func (r *ActivityRepository) Append(userID int64, kind model.ActivityKind, target model.TargetRef) (bool, error) {
	err := insertOnce(r.db, &model.Activity{
		UserID:     userID,
		Kind:       kind,
		TargetKind: target.Kind,
		TargetID:   target.ID,
	})
	if err == nil {
		return true, nil
	}
	if IsDuplicateKey(err) {
		return false, nil
	}
	return false, err
}

// ExistsForTarget 检查目标是否已有动态
func (r *ActivityRepository) ExistsForTarget(target model.TargetRef) (bool, error) {
	var count int64
	err := r.db.Model(&model.Activity{}).Scopes(targetScope(target)).Count(&count).Error
	return count > 0, err
}

// DeleteByTarget 删除指向目标的动态
func (r *ActivityRepository) DeleteByTarget(target model.TargetRef) error {
	return r.db.Scopes(targetScope(target)).Delete(&model.Activity{}).Error
}

// DeleteByTargets 批量删除同类型目标的动态
func (r *ActivityRepository) DeleteByTargets(kind model.TargetKind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&model.Activity{}).Error
}

// ListByUsers 获取一组用户的动态，最新的在前
func (r *ActivityRepository) ListByUsers(userIDs []int64, page, pageSize int) ([]*model.Activity, int64, error) {
	var activities []*model.Activity
	var total int64
	if len(userIDs) == 0 {
		return activities, 0, nil
	}

	query := r.db.Model(&model.Activity{}).Where("user_id IN ?", userIDs)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Scopes(paginate(page, pageSize)).
		Find(&activities).Error
	return activities, total, err
}

// OrphanIDs 查找目标已不存在的动态
func (r *ActivityRepository) OrphanIDs() ([]int64, error) {
	var result []int64
	for kind, table := range orphanTables {
		var ids []int64
		err := r.db.Table("activities").
			Joins("LEFT JOIN "+table+" t ON t.id = activities.target_id").
			Where("activities.target_kind = ? AND t.id IS NULL", kind).
			Pluck("activities.id", &ids).Error
		if err != nil {
			return nil, err
		}
		result = append(result, ids...)
	}
	return result, nil
}

// DeleteByIDs 按 ID 批量删除动态
func (r *ActivityRepository) DeleteByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&model.Activity{})
	return result.RowsAffected, result.Error
}
