package model

import (
	"time"
)

// 注册时自动创建的三个预设列表
var PredefinedListNames = []string{
	"To Watch",
	"Read",
	"Favorites",
}

// PersonalList 用户列表
type PersonalList struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"not null;uniqueIndex:idx_lists_user_name,priority:1" json:"user_id"`
	Name         string    `gorm:"size:100;not null;uniqueIndex:idx_lists_user_name,priority:2" json:"name"`
	IsPredefined bool      `gorm:"default:false" json:"is_predefined"`
	CreatedAt    time.Time `json:"created_at"`

	Items []*ListItem `gorm:"foreignKey:ListID" json:"items,omitempty"`
}

func (PersonalList) TableName() string {
	return "personal_lists"
}

// ListItem 列表条目，同一列表内同一目标只有一条
type ListItem struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	ListID     int64      `gorm:"not null;uniqueIndex:idx_list_items_target,priority:1" json:"list_id"`
	TargetKind TargetKind `gorm:"size:20;not null;uniqueIndex:idx_list_items_target,priority:2" json:"target_kind"`
	TargetID   int64      `gorm:"not null;uniqueIndex:idx_list_items_target,priority:3" json:"target_id"`
	AddedAt    time.Time  `gorm:"autoCreateTime;index" json:"added_at"`

	List *PersonalList `gorm:"foreignKey:ListID" json:"-"`
}

func (ListItem) TableName() string {
	return "list_items"
}

func (i *ListItem) Ref() TargetRef {
	return TargetRef{Kind: KindListItem, ID: i.ID}
}

func (i *ListItem) Target() TargetRef {
	return TargetRef{Kind: i.TargetKind, ID: i.TargetID}
}
