package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) WithTx(tx *gorm.DB) *FollowRepository {
	return &FollowRepository{db: tx}
}

// Create 创建关注，重复关注时返回 gorm.ErrDuplicatedKey
func (r *FollowRepository) Create(follow *model.Follow) error {
	return insertOnce(r.db, follow)
}

func (r *FollowRepository) GetByID(id int64) (*model.Follow, error) {
	var follow model.Follow
	err := r.db.Preload("Following").Where("id = ?", id).First(&follow).Error
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *FollowRepository) Delete(id int64) error {
	return r.db.Delete(&model.Follow{}, id).Error
}

// IsFollowing 检查 followerID 是否关注了 followingID
func (r *FollowRepository) IsFollowing(followerID, followingID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// FollowingIDs 获取用户关注的所有用户 ID
func (r *FollowRepository) FollowingIDs(followerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Follow{}).Where("follower_id = ?", followerID).Pluck("following_id", &ids).Error
	return ids, err
}

// ListByFollower 获取用户的关注列表
func (r *FollowRepository) ListByFollower(followerID int64) ([]*model.Follow, error) {
	var follows []*model.Follow
	err := r.db.Preload("Following").Where("follower_id = ?", followerID).
		Order("created_at DESC, id DESC").
		Find(&follows).Error
	return follows, err
}

// CountFollowers 粉丝数
func (r *FollowRepository) CountFollowers(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing 关注数
func (r *FollowRepository) CountFollowing(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
