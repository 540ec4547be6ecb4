package main

import (
	"log"
	"time"

	"github.com/triprec/trips-backend-go/internal/api"
	"github.com/triprec/trips-backend-go/internal/config"
	"github.com/triprec/trips-backend-go/internal/database"
	"github.com/triprec/trips-backend-go/internal/repository"
	"github.com/triprec/trips-backend-go/internal/trip"
	"github.com/triprec/trips-backend-go/internal/uploader"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	store := repository.NewPointRepository(db)
	collector := uploader.NewClient(cfg.CollectorURL, time.Duration(cfg.UploadTimeout)*time.Second)
	engine := trip.NewEngine(store, collector)

	// 初始化路由
	router := api.SetupRouter(cfg, engine)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
