package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/config"
	"github.com/qs3c/shelf_server/internal/api/handler"
	"github.com/qs3c/shelf_server/internal/api/middleware"
	"github.com/qs3c/shelf_server/internal/pkg/ratelimit"
	"github.com/qs3c/shelf_server/internal/pkg/tokenstore"
)

// Handlers 路由用到的全部 handler
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Content *handler.ContentHandler
	Rating  *handler.RatingHandler
	Review  *handler.ReviewHandler
	Follow  *handler.FollowHandler
	List    *handler.ListHandler
	Reply   *handler.ReplyHandler
	Feed    *handler.FeedHandler
}

type Router struct {
	handlers  Handlers
	blacklist *tokenstore.Blacklist
	limiter   *ratelimit.Limiter
	cfg       *config.Config
}

// NewRouter blacklist、limiter 可以为 nil
func NewRouter(handlers Handlers, blacklist *tokenstore.Blacklist, limiter *ratelimit.Limiter, cfg *config.Config) *Router {
	return &Router{
		handlers:  handlers,
		blacklist: blacklist,
		limiter:   limiter,
		cfg:       cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.CORS(r.cfg.CORS))

	h := r.handlers
	secret := r.cfg.JWT.Secret

	var limiter *ratelimit.Limiter
	if r.cfg.RateLimit.Enabled {
		limiter = r.limiter
	}

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(limiter), h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(limiter), h.Auth.Login)
		}

		// 公开接口 - 内容
		api.GET("/search", h.Content.Search)
		api.GET("/discover", h.Content.Discover)
		api.GET("/content/:type/:id", middleware.OptionalAuth(secret, r.blacklist), h.Content.Detail)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(secret, r.blacklist))
		authenticated.Use(middleware.RateLimit(limiter))
		{
			authenticated.POST("/auth/logout", h.Auth.Logout)

			// 用户
			authenticated.GET("/users/:id", h.User.GetProfile)
			authenticated.GET("/users/:id/activities", h.Feed.UserActivities)
			authenticated.PUT("/user/profile", h.User.UpdateProfile)

			// 动态
			authenticated.GET("/feed", h.Feed.Feed)

			// 评分
			ratings := authenticated.Group("/ratings")
			{
				ratings.POST("", h.Rating.Create)
				ratings.GET("", h.Rating.List)
				ratings.DELETE("/:id", h.Rating.Delete)
				ratings.POST("/:id/like", h.Rating.Like)
			}

			// 评论
			reviews := authenticated.Group("/reviews")
			{
				reviews.POST("", h.Review.Create)
				reviews.GET("", h.Review.List)
				reviews.GET("/:id", h.Review.Get)
				reviews.PUT("/:id", h.Review.Update)
				reviews.DELETE("/:id", h.Review.Delete)
				reviews.POST("/:id/like", h.Review.Like)
			}

			// 关注
			follows := authenticated.Group("/follows")
			{
				follows.POST("", h.Follow.Create)
				follows.GET("", h.Follow.List)
				follows.DELETE("/:id", h.Follow.Delete)
			}

			// 列表
			lists := authenticated.Group("/lists")
			{
				lists.GET("", h.List.List)
				lists.POST("", h.List.Create)
				lists.DELETE("/:id", h.List.Delete)
			}
			authenticated.POST("/listitems", h.List.AddItem)
			authenticated.DELETE("/listitems/:id", h.List.RemoveItem)

			// 回复
			authenticated.POST("/replies", h.Reply.Create)
			authenticated.DELETE("/replies/:id", h.Reply.Delete)
		}
	}

	return engine
}
