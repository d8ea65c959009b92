package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/api/handlers"
	"debate_hub/internal/middleware"
	"debate_hub/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	adminHandler := handlers.NewAdminHandler(services.Admin, services.User)
	topicHandler := handlers.NewTopicHandler(services.Topic)
	debateHandler := handlers.NewDebateHandler(services.Debate)
	userHandler := handlers.NewUserHandler(services.User)
	webhookHandler := handlers.NewWebhookHandler(services.User)
	automationHandler := handlers.NewAutomationHandler(services.Automation)
	wsHandler := handlers.NewWebSocketHandler(services.Feed, services.Debate)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		api.POST("/admin/login", adminHandler.Login)
		api.POST("/users/sync", userHandler.SyncUser)
		api.POST("/webhooks/clerk", webhookHandler.HandleClerkWebhook)

		// 外部排程器的觸發點，也可手動呼叫
		api.GET("/cron", automationHandler.Run)

		// 辯論列表與詳情對所有人開放
		api.GET("/debates", debateHandler.ListDebates)
		api.GET("/debates/:id", debateHandler.GetDebate)

		// 辯論事件訂閱
		api.GET("/debates/:id/ws", wsHandler.HandleWebSocket)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 用戶路由（需要 Clerk 身份）
	userAuthed := api.Group("/")
	userAuthed.Use(middleware.ClerkAuth(services.User))
	{
		userAuthed.GET("/users/me", userHandler.GetProfile)
		userAuthed.POST("/debates/join", debateHandler.JoinDebate)
		userAuthed.POST("/debates/leave", debateHandler.LeaveDebate)
	}

	// 管理員路由
	adminAuthed := api.Group("/")
	adminAuthed.Use(middleware.AdminAuth())
	{
		adminAuthed.GET("/admin/stats", adminHandler.GetStats)
		adminAuthed.GET("/admin/users", adminHandler.ListUsers)

		// 題目管理
		adminAuthed.POST("/topics", topicHandler.CreateTopic)
		adminAuthed.GET("/topics", topicHandler.ListTopics)
		adminAuthed.GET("/topics/unused", topicHandler.ListUnusedTopics)
		adminAuthed.GET("/topics/:id", topicHandler.GetTopic)
		adminAuthed.DELETE("/topics/:id", topicHandler.DeleteTopic)

		// 辯論管理
		adminAuthed.POST("/debates", debateHandler.CreateDebate)
		adminAuthed.PATCH("/debates/reveal/:id", debateHandler.RevealDebate)
		adminAuthed.PATCH("/debates/:id", debateHandler.UpdateDebate)
		adminAuthed.DELETE("/debates/:id", debateHandler.DeleteDebate)
	}
}
