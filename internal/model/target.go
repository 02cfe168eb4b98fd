package model

import (
	"fmt"
	"strings"
)

// TargetKind 多态引用的类型标签，与 target_id 一起持久化
type TargetKind string

const (
	KindBook     TargetKind = "book"
	KindMovie    TargetKind = "movie"
	KindRating   TargetKind = "rating"
	KindReview   TargetKind = "review"
	KindListItem TargetKind = "list_item"
	KindFollow   TargetKind = "follow"
)

var allKinds = []TargetKind{KindBook, KindMovie, KindRating, KindReview, KindListItem, KindFollow}

// 按使用场景划分的可引用类型集合
var (
	ContentKinds  = []TargetKind{KindBook, KindMovie}
	SocialKinds   = []TargetKind{KindRating, KindReview}
	ActivityKinds = []TargetKind{KindRating, KindReview, KindListItem, KindFollow}
)

// InvalidKindError 无法识别的类型标签
type InvalidKindError struct {
	Label   string
	Allowed []TargetKind
}

func (e *InvalidKindError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, k := range e.Allowed {
		names[i] = string(k)
	}
	return fmt.Sprintf("content type '%s' is not valid, expected one of: %s", e.Label, strings.Join(names, ", "))
}

// ParseTargetKind 解析类型标签（大小写不敏感）
func ParseTargetKind(label string) (TargetKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	// 兼容 "listitem" 写法
	if normalized == "listitem" {
		normalized = string(KindListItem)
	}
	for _, k := range allKinds {
		if string(k) == normalized {
			return k, nil
		}
	}
	return "", &InvalidKindError{Label: label, Allowed: allKinds}
}

// Display 展示名称（Book / Movie / ...）
func (k TargetKind) Display() string {
	switch k {
	case KindBook:
		return "Book"
	case KindMovie:
		return "Movie"
	case KindRating:
		return "Rating"
	case KindReview:
		return "Review"
	case KindListItem:
		return "ListItem"
	case KindFollow:
		return "Follow"
	}
	return string(k)
}

// TargetRef 多态目标引用：(kind, id)
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   int64      `json:"id"`
}

// NewTargetRef 由外部传入的标签和 ID 构造引用，并校验所属集合
func NewTargetRef(label string, id int64, allowed ...TargetKind) (TargetRef, error) {
	kind, err := ParseTargetKind(label)
	if err != nil {
		return TargetRef{}, err
	}
	ref := TargetRef{Kind: kind, ID: id}
	if err := ref.Within(allowed...); err != nil {
		return TargetRef{}, &InvalidKindError{Label: label, Allowed: allowed}
	}
	return ref, nil
}

// Within 校验引用类型属于给定集合；集合为空时不限制
func (r TargetRef) Within(allowed ...TargetKind) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, k := range allowed {
		if r.Kind == k {
			return nil
		}
	}
	return &InvalidKindError{Label: string(r.Kind), Allowed: allowed}
}

func (r TargetRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// Target 可以被 TargetRef 指向的实体
type Target interface {
	Ref() TargetRef
}
