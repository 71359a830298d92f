package handler

import (
	"curalink-go/internal/middleware"
	"curalink-go/internal/repository"
	"curalink-go/internal/service"
	"curalink-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// RouterDeps 汇总了注册路由所需的依赖。
type RouterDeps struct {
	DB            *gorm.DB
	JWTManager    *token.JWTManager
	Blacklist     repository.TokenBlacklist
	UserService   service.UserService
	SearchService service.SearchService
}

// NewRouter 创建路由引擎并注册全部路由。
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加自定义的日志、指标中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), middleware.Metrics(), gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userHandler := NewUserHandler(d.UserService)
	searchHandler := NewSearchHandler(d.SearchService)
	authMiddleware := middleware.AuthMiddleware(d.JWTManager, d.Blacklist)

	api := r.Group("/api")
	{
		api.GET("/test-db", NewHealthHandler(d.DB).TestDB)

		// 无需认证的路由
		api.POST("/register", userHandler.Register)
		api.POST("/login", userHandler.Login)
		api.POST("/auth/refreshToken", NewAuthHandler(d.UserService).RefreshToken)

		api.POST("/logout", authMiddleware, userHandler.Logout)

		// Search 路由组，任何已登录角色均可访问
		search := api.Group("/search")
		search.Use(authMiddleware)
		{
			search.POST("/publications", searchHandler.SearchPublications)
			search.POST("/trials", searchHandler.SearchTrials)
			search.POST("/experts", searchHandler.SearchExperts)
		}
	}
	return r
}
