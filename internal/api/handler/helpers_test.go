package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/config"
	"github.com/qs3c/shelf_server/internal/api/middleware"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/repository"
	"github.com/qs3c/shelf_server/internal/service"
	"github.com/qs3c/shelf_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key"

// testContext 一套接在同一测试库上的 handler
type testContext struct {
	DB      *gorm.DB
	Auth    *AuthHandler
	User    *UserHandler
	Content *ContentHandler
	Rating  *RatingHandler
	Review  *ReviewHandler
	Follow  *FollowHandler
	List    *ListHandler
	Reply   *ReplyHandler
	Feed    *FeedHandler
}

func setupHandlers(t *testing.T) (*testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      testSecret,
			ExpireHours: 24,
		},
	}

	tx := repository.NewTransactor(db)
	resolver := repository.NewTargetResolver(db)
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	listRepo := repository.NewListRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	hydrator := service.NewHydrator(resolver, likeRepo, replyRepo, 200)
	interactions := service.NewInteractionService(tx, resolver, userRepo, ratingRepo, reviewRepo,
		listRepo, followRepo, likeRepo, replyRepo, activityRepo, hydrator)
	social := service.NewSocialService(tx, resolver, likeRepo, replyRepo)

	ctx := &testContext{
		DB:      db,
		Auth:    NewAuthHandler(service.NewAuthService(tx, userRepo, listRepo, nil, cfg)),
		User:    NewUserHandler(service.NewUserService(userRepo, followRepo)),
		Content: NewContentHandler(service.NewContentService(resolver, contentRepo, ratingRepo, reviewRepo, listRepo)),
		Rating:  NewRatingHandler(interactions, social),
		Review:  NewReviewHandler(interactions, social),
		Follow:  NewFollowHandler(interactions),
		List:    NewListHandler(service.NewListService(tx, listRepo, activityRepo, hydrator), interactions),
		Reply:   NewReplyHandler(social),
		Feed:    NewFeedHandler(service.NewFeedService(activityRepo, followRepo, userRepo, hydrator, cfg.Feed)),
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return ctx, cleanup
}

// mockAuth 跳过令牌校验，直接注入用户 ID
func mockAuth(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// dataMap 把响应 data 视为 JSON 对象
func dataMap(t *testing.T, resp response.Response) map[string]interface{} {
	t.Helper()

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return data
}
