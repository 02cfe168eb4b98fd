package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

type ReplyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

func (r *ReplyRepository) WithTx(tx *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: tx}
}

// Create 创建回复
func (r *ReplyRepository) Create(reply *model.Reply) error {
	return r.db.Create(reply).Error
}

// GetByID 根据 ID 获取回复
func (r *ReplyRepository) GetByID(id int64) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.Where("id = ?", id).First(&reply).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetByIDWithUser 获取回复及用户信息
func (r *ReplyRepository) GetByIDWithUser(id int64) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.Preload("User").Where("id = ?", id).First(&reply).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Delete 删除回复
func (r *ReplyRepository) Delete(id int64) error {
	return r.db.Delete(&model.Reply{}, id).Error
}

// ListByTarget 获取目标下的回复，按时间升序
func (r *ReplyRepository) ListByTarget(target model.TargetRef) ([]*model.Reply, error) {
	var replies []*model.Reply
	err := r.db.Preload("User").Scopes(targetScope(target)).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	return replies, err
}

// DeleteByTarget 删除目标下的全部回复
func (r *ReplyRepository) DeleteByTarget(target model.TargetRef) (int64, error) {
	result := r.db.Scopes(targetScope(target)).Delete(&model.Reply{})
	return result.RowsAffected, result.Error
}
