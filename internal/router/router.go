package router

import (
	"github.com/blues/ccl/internal/config"
	"github.com/blues/ccl/internal/handler"
	"github.com/blues/ccl/internal/ledger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(registry *ledger.Registry, db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   "campaign-custody-ledger",
			"campaigns": registry.Count(),
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(registry, db)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.GET("/:id/active", campaignHandler.IsActive)
			campaigns.POST("/:id/contributions", campaignHandler.Contribute)
			campaigns.POST("/:id/withdrawal", campaignHandler.Withdraw)
			campaigns.POST("/:id/refunds", campaignHandler.Refund)
			campaigns.GET("/:id/contributions/:address", campaignHandler.GetContribution)
			campaigns.GET("/:id/contributors/count", campaignHandler.GetContributorCount)
			campaigns.GET("/:id/records/contributions", campaignHandler.GetContributeRecords)
			campaigns.GET("/:id/records/refunds", campaignHandler.GetRefundRecords)
			campaigns.GET("/:id/records/withdrawal", campaignHandler.GetWithdrawRecord)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
		}

		// 历史快照与事件审计路由
		records := v1.Group("/records")
		{
			records.GET("/campaigns", campaignHandler.GetCampaignRecords)
			records.GET("/campaigns/:id", campaignHandler.GetCampaignRecord)
			records.GET("/events", campaignHandler.GetEvents)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
