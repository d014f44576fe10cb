package api

import (
	"time"

	healthHandler "recipe-agent/internal/api/handlers/health"
	preferenceHandler "recipe-agent/internal/api/handlers/preference"
	recipeHandler "recipe-agent/internal/api/handlers/recipe"
	"recipe-agent/internal/api/middleware"
	"recipe-agent/internal/core/ai/provider"
	recipeCore "recipe-agent/internal/core/recipe"
	"recipe-agent/internal/infrastructure/config"
	"recipe-agent/internal/pkg/common"
	"recipe-agent/internal/storage/preference"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 請求體大小限制 (1MB)，偏好與生成請求都是小型 JSON
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store *preference.Store, modelProvider provider.Provider) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 初始化生成管線，決策事件由路由層持有並寫入日誌
	pipeline := recipeCore.NewPipeline(modelProvider, cfg.Generation.MinIngredients,
		recipeCore.WithPipelineDecisionHook(logDecision),
	)

	common.LogInfo("Recipe pipeline initialized",
		zap.String("model", modelProvider.Model()),
		zap.Int("min_ingredients", cfg.Generation.MinIngredients),
	)

	// 健康檢查
	router.GET("/health", healthHandler.HealthCheck(cfg))
	router.GET("/health/ready", healthHandler.ReadinessCheck(store))
	router.GET("/health/live", healthHandler.LivenessCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		prefs := v1.Group("/preferences")
		{
			prefs.POST("", preferenceHandler.HandleInsert(store))
			prefs.POST("/query", preferenceHandler.HandleQuery(store))
			prefs.DELETE("/:user_id", preferenceHandler.HandleDelete(store))
		}

		recipes := v1.Group("/recipes")
		recipes.Use(middleware.Deduplication(cfg))
		{
			recipes.POST("/generate", recipeHandler.HandleGenerate(pipeline, store))
		}
	}

	common.LogInfo("Router setup completed")

	return router, nil
}

// logDecision 將管線決策事件寫入日誌
func logDecision(event recipeCore.DecisionEvent) {
	if event.Accepted {
		common.LogInfo("食譜決策",
			zap.String("recipe_key", event.RecipeKey),
			zap.String("stage", event.Stage),
			zap.String("reason", event.Reason),
		)
		return
	}
	common.LogInfo("食譜淘汰",
		zap.String("recipe_key", event.RecipeKey),
		zap.String("recipe_name", event.RecipeName),
		zap.String("stage", event.Stage),
		zap.String("reason", event.Reason),
	)
}
