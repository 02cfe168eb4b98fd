package service

import (
	"errors"
	"fmt"

	"github.com/qs3c/shelf_server/internal/model"
)

// ValidationError 输入校验失败，Field 指明出错的字段
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// 未找到
var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrContentNotFound     = errors.New("内容不存在")
	ErrInteractionNotFound = errors.New("互动记录不存在")
	ErrListNotFound        = errors.New("列表不存在")
	ErrTargetNotFound      = errors.New("目标不存在")
)

// 权限
var (
	ErrPermissionDenied   = errors.New("无权操作")
	ErrPredefinedList     = errors.New("预设列表不能删除")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// 冲突
var (
	ErrAlreadyFollowing = errors.New("已关注该用户")
	ErrUsernameExists   = errors.New("用户名已被使用")
	ErrEmailExists      = errors.New("邮箱已被注册")
)

// 校验类错误，按字段返回
var (
	ErrCannotFollowSelf = &ValidationError{Field: "following", Message: "不能关注自己"}
	ErrListNameExists   = &ValidationError{Field: "name", Message: "列表名称已存在"}
	ErrPasswordMismatch = &ValidationError{Field: "password", Message: "两次输入的密码不一致"}
)

// ParseTarget 解析客户端传入的目标，类型不在 allowed 中时返回 ValidationError
func ParseTarget(label string, id int64, allowed ...model.TargetKind) (model.TargetRef, error) {
	ref, err := model.NewTargetRef(label, id, allowed...)
	if err != nil {
		return model.TargetRef{}, &ValidationError{Field: "content_type", Message: err.Error()}
	}
	return ref, nil
}

// IsNotFound 判断是否为任一未找到错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrContentNotFound) ||
		errors.Is(err, ErrInteractionNotFound) ||
		errors.Is(err, ErrListNotFound) ||
		errors.Is(err, ErrTargetNotFound)
}
