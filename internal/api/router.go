package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-pantry/internal/api/handlers/health"
	pantryHandler "recipe-pantry/internal/api/handlers/pantry"
	"recipe-pantry/internal/api/middleware"
	"recipe-pantry/internal/core/ingredient"
	"recipe-pantry/internal/core/instruction"
	pantryCore "recipe-pantry/internal/core/pantry"
	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)：請求只攜帶食譜與庫存快照的純資料
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, parseCache *ingredient.CacheService, instructionCache *instruction.Cache) (*gin.Engine, error) {
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

	// 請求去重
	router.Use(middleware.Deduplication(cfg))

	// 初始化引擎服務
	analysisService := pantryCore.NewService()
	linker := instruction.NewLinker(instruction.VariantRules{
		Modifiers:     cfg.Linker.Modifiers,
		MinWordLength: cfg.Linker.MinWordLength,
	}, instructionCache)

	handler := pantryHandler.NewHandler(cfg, parseCache, analysisService, linker)

	common.LogInfo("Engine services initialized",
		zap.Bool("parse_cache_enabled", cfg.Cache.Enabled),
		zap.Int("min_servings", cfg.Scaling.MinServings),
		zap.Int("max_servings", cfg.Scaling.MaxServings),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// 注入配置與緩存供健康檢查使用
		c.Set("config", cfg)
		c.Set("instruction_cache", instructionCache)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 食材解析與修正
		ingredientGroup := api.Group("/ingredient")
		{
			ingredientGroup.POST("/parse", handler.HandleParse)
			ingredientGroup.POST("/issues", handler.HandleDetectIssues)
			ingredientGroup.POST("/fix", handler.HandleApplyFix)
			ingredientGroup.POST("/fix-all", handler.HandleFixAll)
		}

		// 食譜縮放、指示連結與庫存分析
		recipeGroup := api.Group("/recipe")
		{
			recipeGroup.POST("/scale", handler.HandleScale)
			recipeGroup.POST("/instructions", handler.HandleInstructions)
			recipeGroup.DELETE("/instructions/cache", handler.HandleClearInstructionCache)
			recipeGroup.POST("/analysis", handler.HandleAnalysis)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

// Addr 組合監聽位址
func Addr(cfg *config.Config) string {
	return fmt.Sprintf(":%d", cfg.Server.Port)
}
