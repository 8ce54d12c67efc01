package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tatblog/internal/config"
	"github.com/tatblog/internal/db"
	"github.com/tatblog/internal/handler"
	"github.com/tatblog/internal/router"
)

func main() {
	cfg := config.Load()

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(db.DB, cfg.DefaultPageSize)
	r := router.SetupRouter(api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
