package main

import (
	"flag"
	"log/slog"
	"os"

	"ascend/internal/config"
	"ascend/internal/handler"
	"ascend/internal/logger"
	"ascend/internal/middleware"
	"ascend/internal/model"
	"ascend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	middleware.JWTSecret = []byte(cfg.Server.JWTSecret)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.Member{}, &model.TrackerEntry{}, &model.Plan{}, &model.PlanTask{}, &model.Post{}); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	aiSvc := service.NewAIService(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	if !aiSvc.Configured() {
		slog.Warn("ai gateway not configured, content tools disabled")
	}
	authSvc := service.NewAuthService(db)
	trackerSvc := service.NewTrackerService(db)
	planSvc := service.NewPlanService(db)
	feedSvc := service.NewFeedService(db)

	authH := handler.NewAuthHandler(authSvc)
	trackerH := handler.NewTrackerHandler(trackerSvc)
	planH := handler.NewPlanHandler(planSvc)
	feedH := handler.NewFeedHandler(feedSvc)
	toolsH := handler.NewToolsHandler(aiSvc)

	r := gin.Default()
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/login", authH.Login)
	r.POST("/api/register", authH.Register)

	api := r.Group("/api", middleware.JWTAuth())
	api.GET("/trackers", trackerH.List)
	api.POST("/trackers", trackerH.Create)
	api.POST("/trackers/upsert", trackerH.Upsert)
	api.PUT("/trackers/:id", trackerH.Update)
	api.DELETE("/trackers/:id", trackerH.Delete)
	api.GET("/trackers/streak/:type", trackerH.Streak)
	api.GET("/trackers/summary/:type", trackerH.Summary)

	api.POST("/plans", planH.Create)
	api.GET("/plans", planH.List)
	api.GET("/plans/current", planH.Current)
	api.PUT("/plans/:id/progress", planH.UpdateProgress)
	api.PUT("/plans/:id/status", planH.UpdateStatus)
	api.GET("/plans/:id/tasks", planH.Tasks)
	api.PUT("/plans/:id/tasks/:taskId", planH.ToggleTask)

	api.GET("/feed", feedH.List)
	api.POST("/feed", feedH.Create)
	api.POST("/feed/:id/like", feedH.Like)

	api.POST("/tools/reframe", toolsH.Reframe)
	api.POST("/tools/stream/:tool", toolsH.Stream)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
