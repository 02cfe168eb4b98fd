package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/qs3c/shelf_server/internal/api/middleware"
	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

// writeServiceError 把服务层错误映射为统一响应
func writeServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.FieldError(c, verr.Field, verr.Message)
	case service.IsNotFound(err):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrPredefinedList):
		response.PermissionError(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists):
		response.DuplicateError(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.AuthError(c, err.Error())
	default:
		zap.L().Error("unhandled service error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.ServerError(c, "")
	}
}

// bindJSON 绑定请求体，失败时按字段写 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		fe := verrs[0]
		response.FieldError(c, jsonFieldName(obj, fe.StructField()), validationMessage(fe))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		response.FieldError(c, typeErr.Field, fmt.Sprintf("类型应为 %s", typeErr.Type))
	default:
		response.ParamError(c, err.Error())
	}
	return false
}

// jsonFieldName 结构体字段名转为请求中的 json 键
func jsonFieldName(obj interface{}, field string) string {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(field); ok {
			if name := strings.Split(sf.Tag.Get("json"), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
	}
	return strings.ToLower(field)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "该字段为必填项"
	case "email":
		return "邮箱格式不正确"
	case "min":
		return fmt.Sprintf("不能小于 %s", fe.Param())
	case "max":
		return fmt.Sprintf("不能大于 %s", fe.Param())
	default:
		return fmt.Sprintf("校验失败: %s", fe.Tag())
	}
}

// requireUser 取出已认证用户，未认证时直接写 401
func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
	}
	return userID, ok
}

// viewerID 可选认证下的当前用户，未登录为 0
func viewerID(c *gin.Context) int64 {
	userID, _ := middleware.GetUserID(c)
	return userID
}

// pathID 解析路径中的数字 ID
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.FieldError(c, name, "无效的ID")
		return 0, false
	}
	return id, true
}

// pageQuery 读取 page / page_size 查询参数
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// parseTarget 解析请求中的 content_type/object_id，失败时写 400
func parseTarget(c *gin.Context, label string, id int64, allowed ...model.TargetKind) (model.TargetRef, bool) {
	ref, err := service.ParseTarget(label, id, allowed...)
	if err != nil {
		writeServiceError(c, err)
		return model.TargetRef{}, false
	}
	return ref, true
}
