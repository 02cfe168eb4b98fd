package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) WithTx(tx *gorm.DB) *ListRepository {
	return &ListRepository{db: tx}
}

// Create 创建列表，同名列表返回 gorm.ErrDuplicatedKey
func (r *ListRepository) Create(list *model.PersonalList) error {
	return insertOnce(r.db, list)
}

// CreatePredefined 为新用户创建预设列表
func (r *ListRepository) CreatePredefined(userID int64) error {
	lists := make([]*model.PersonalList, 0, len(model.PredefinedListNames))
	for _, name := range model.PredefinedListNames {
		lists = append(lists, &model.PersonalList{
			UserID:       userID,
			Name:         name,
			IsPredefined: true,
		})
	}
	return r.db.Create(&lists).Error
}

func (r *ListRepository) GetByID(id int64) (*model.PersonalList, error) {
	var list model.PersonalList
	err := r.db.Where("id = ?", id).First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByUser 获取用户的全部列表及条目
func (r *ListRepository) ListByUser(userID int64) ([]*model.PersonalList, error) {
	var lists []*model.PersonalList
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("added_at DESC, id DESC")
	}).Where("user_id = ?", userID).Order("id ASC").Find(&lists).Error
	return lists, err
}

// Delete 删除列表及其条目
func (r *ListRepository) Delete(id int64) error {
	if err := r.db.Where("list_id = ?", id).Delete(&model.ListItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.PersonalList{}, id).Error
}

// ItemIDs 获取列表下所有条目 ID
func (r *ListRepository) ItemIDs(listID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.ListItem{}).Where("list_id = ?", listID).Pluck("id", &ids).Error
	return ids, err
}

// AddItem 添加条目，同一列表重复添加返回 gorm.ErrDuplicatedKey
func (r *ListRepository) AddItem(item *model.ListItem) error {
	return insertOnce(r.db, item)
}

// GetItem 获取条目（含所属列表）
func (r *ListRepository) GetItem(id int64) (*model.ListItem, error) {
	var item model.ListItem
	err := r.db.Preload("List").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByTarget 按 (list, target) 查找条目
func (r *ListRepository) GetItemByTarget(listID int64, target model.TargetRef) (*model.ListItem, error) {
	return r.getItemByTarget(listID, target)
}

// LockItemByTarget 加锁读取条目，用于重复添加冲突后取回已提交的行
func (r *ListRepository) LockItemByTarget(listID int64, target model.TargetRef) (*model.ListItem, error) {
	return r.getItemByTarget(listID, target, lockingRead)
}

func (r *ListRepository) getItemByTarget(listID int64, target model.TargetRef, scopes ...func(*gorm.DB) *gorm.DB) (*model.ListItem, error) {
	var item model.ListItem
	err := r.db.Scopes(scopes...).Scopes(targetScope(target)).Where("list_id = ?", listID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ListRepository) DeleteItem(id int64) error {
	return r.db.Delete(&model.ListItem{}, id).Error
}

// ItemCountsByTarget 按目标分组的收录次数
func (r *ListRepository) ItemCountsByTarget(kind model.TargetKind) (map[int64]int64, error) {
	var rows []struct {
		TargetID int64
		Count    int64
	}
	err := r.db.Model(&model.ListItem{}).
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
