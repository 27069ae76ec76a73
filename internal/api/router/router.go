package router

import (
	"regexp"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/postline/config"
	_ "github.com/d60-Lab/postline/docs"
	"github.com/d60-Lab/postline/internal/api/handler"
	"github.com/d60-Lab/postline/internal/api/middleware"
	"github.com/d60-Lab/postline/internal/cache"
	"github.com/d60-Lab/postline/internal/service"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Setup 组装路由与全局中间件
func Setup(cfg *config.Config, h *handler.Handler, auth *service.AuthService, lc *cache.ListingCache) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(otelgin.Middleware("postline"))
	r.Use(middleware.Authenticate(auth))
	r.Use(middleware.CSRF(cfg.Server.CSRFEnabled))

	r.GET("/", middleware.PageCache(lc), h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/groups/", h.Groups)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:id/", h.Detail)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/login", h.LoginForm)

	// 受保护路由：匿名访问 302 到登录页并带上原目标
	authed := r.Group("/", middleware.LoginRequired(cfg.Auth.LoginURL))
	{
		authed.GET("/create/", h.CreateForm)
		authed.POST("/create/", h.Create)
		authed.GET("/posts/:id/edit/", h.EditForm)
		authed.POST("/posts/:id/edit/", h.Edit)
		authed.POST("/posts/:id/comment/", h.AddComment)
		authed.GET("/follow/", h.FollowIndex)
		authed.GET("/profile/:username/follow/", h.ProfileFollow)
		authed.POST("/profile/:username/follow/", h.ProfileFollow)
		authed.GET("/profile/:username/unfollow/", h.ProfileUnfollow)
		authed.POST("/profile/:username/unfollow/", h.ProfileUnfollow)
		authed.POST("/groups/", h.CreateGroup)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(h.NotFound)
	return r
}
