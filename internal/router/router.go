package router

import (
	"github.com/careroute/backend/config"
	"github.com/careroute/backend/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func Setup(
	cfg *config.Config,
	routingHandler *handler.RoutingHandler,
	agentHandler *handler.AgentHandler,
	ruleHandler *handler.RuleHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		rt := api.Group("/routing")
		{
			rt.POST("/route", routingHandler.Route)
			rt.POST("/check-match", routingHandler.CheckMatch)
			rt.POST("/process-queue/:agentId", routingHandler.ProcessQueue)
			rt.POST("/rebalance", routingHandler.Rebalance)
			rt.POST("/skill-hierarchy", routingHandler.RegisterHierarchy)
			rt.POST("/round-robin/reset", routingHandler.ResetRoundRobin)
			rt.GET("/queues", routingHandler.GetQueues)
			rt.GET("/queues/:queueId/tasks", routingHandler.GetQueuedTasks)
			rt.DELETE("/tasks/:taskId", routingHandler.RemoveQueuedTask)
		}

		// 坐席统一按 agent_id（业务ID）操作
		agents := api.Group("/agents")
		{
			agents.POST("", agentHandler.Create)
			agents.GET("", agentHandler.List)
			agents.GET("/:agentId", agentHandler.Get)
			agents.PUT("/:agentId", agentHandler.Update)
			agents.DELETE("/:agentId", agentHandler.Delete)
			agents.PUT("/:agentId/availability", agentHandler.SetAvailability) // 触发队列分发
			agents.POST("/:agentId/complete-task", agentHandler.CompleteTask)  // 释放容量
			agents.POST("/:agentId/skills", agentHandler.UpsertSkill)
			agents.GET("/:agentId/skills", agentHandler.GetSkills)
		}

		rules := api.Group("/rules")
		{
			rules.POST("", ruleHandler.Create)
			rules.GET("", ruleHandler.List)
			rules.GET("/:id", ruleHandler.Get)
			rules.PUT("/:id", ruleHandler.Update)
			rules.DELETE("/:id", ruleHandler.Delete)
		}
	}

	return r
}
