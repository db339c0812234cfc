package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fangguanya/BiliNote/internal/api"
	"github.com/fangguanya/BiliNote/internal/config"
	"github.com/fangguanya/BiliNote/internal/cookie"
	"github.com/fangguanya/BiliNote/internal/db"
	"github.com/fangguanya/BiliNote/internal/resolver"
	"github.com/fangguanya/BiliNote/internal/worker"
)

func main() {
	// 1. Load Config
	if err := config.LoadConfig("."); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Gin Mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// 转换为绝对路径日志一下
	absPath, _ := filepath.Abs(config.AppConfig.Database.Path)
	log.Printf("Initializing database at: %s", absPath)

	db.InitDB(config.AppConfig.Database.Path)

	cookieManager := cookie.NewManager(db.DB)
	res := resolver.New(resolver.Options{
		Timeout:     time.Duration(config.AppConfig.Resolver.TimeoutSeconds) * time.Second,
		PageCallCap: config.AppConfig.Resolver.PageCallCap,
	})

	r := gin.Default()

	// 初始化路由
	api.InitRoutes(r, res, cookieManager)

	// 解析历史异步落库
	worker.StartHistoryWorker()

	port := fmt.Sprintf("%d", config.AppConfig.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
