package model

import (
	"time"
)

// ActivityKind 动态类型
type ActivityKind int

const (
	ActivityRating  ActivityKind = 1
	ActivityReview  ActivityKind = 2
	ActivityListAdd ActivityKind = 3
	ActivityFollow  ActivityKind = 4
)

var activityDisplay = map[ActivityKind]string{
	ActivityRating:  "Rating",
	ActivityReview:  "Review",
	ActivityListAdd: "List_Add",
	ActivityFollow:  "Follow",
}

func (k ActivityKind) Display() string {
	return activityDisplay[k]
}

// TargetKind 每种动态指向的互动类型
func (k ActivityKind) TargetKind() TargetKind {
	switch k {
	case ActivityRating:
		return KindRating
	case ActivityReview:
		return KindReview
	case ActivityListAdd:
		return KindListItem
	case ActivityFollow:
		return KindFollow
	}
	return ""
}

// Activity 动态流水，每个互动创建时追加一条，只读不改。
// (target_kind, target_id) 唯一：一个互动最多对应一条动态。
type Activity struct {
	ID         int64        `gorm:"primaryKey" json:"id"`
	UserID     int64        `gorm:"not null;index:idx_activities_user_created,priority:1" json:"user_id"`
	Kind       ActivityKind `gorm:"column:activity_type;not null" json:"activity_type"`
	TargetKind TargetKind   `gorm:"size:20;not null;uniqueIndex:idx_activities_target,priority:1" json:"target_kind"`
	TargetID   int64        `gorm:"not null;uniqueIndex:idx_activities_target,priority:2" json:"object_id"`
	CreatedAt  time.Time    `gorm:"index:idx_activities_user_created,priority:2" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}

func (a *Activity) Target() TargetRef {
	return TargetRef{Kind: a.TargetKind, ID: a.TargetID}
}
