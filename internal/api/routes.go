package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fangguanya/BiliNote/internal/cookie"
	"github.com/fangguanya/BiliNote/internal/resolver"
)

// 包级依赖，和 db.DB / config.AppConfig 一个用法
var (
	res     *resolver.Resolver
	cookies *cookie.Manager
)

func InitRoutes(r *gin.Engine, rs *resolver.Resolver, cm *cookie.Manager) {
	res = rs
	cookies = cm

	r.Use(CORSMiddleware())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		// 解析
		apiGroup.POST("/resolve", ResolveHandler)
		apiGroup.POST("/resolve/batch", BatchResolveHandler)
		apiGroup.GET("/resolve/history", ResolveHistoryHandler)

		// Cookie 由外部扫码登录流程写入，这里只做存取边界
		apiGroup.PUT("/cookie/:platform", SetCookieHandler)
		apiGroup.GET("/cookie/:platform", CookieStatusHandler)
		apiGroup.DELETE("/cookie/:platform", DeleteCookieHandler)
	}
}
