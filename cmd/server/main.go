package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/careroute/backend/config"
	"github.com/careroute/backend/internal/eventbus"
	"github.com/careroute/backend/internal/handler"
	"github.com/careroute/backend/internal/pkg/database"
	"github.com/careroute/backend/internal/repository"
	"github.com/careroute/backend/internal/router"
	"github.com/careroute/backend/internal/service"
	"github.com/careroute/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	agentRepo := repository.NewAgentRepository(db)
	ruleRepo := repository.NewRuleRepository(db)

	// 事件总线：坐席可用 / 容量释放 → 队列分发
	bus := eventbus.NewBus()

	// 初始化 Service
	routingService, err := service.NewRoutingService(cfg, agentRepo, ruleRepo, bus)
	if err != nil {
		log.Fatalf("Failed to initialize routing service: %v", err)
	}
	defer routingService.Shutdown()
	agentService := service.NewAgentService(agentRepo, bus)
	ruleService := service.NewRuleService(ruleRepo)

	subscriber.NewAgentEventSubscriber(routingService).Register(bus)

	// 初始化 Handler
	routingHandler := handler.NewRoutingHandler(routingService)
	agentHandler := handler.NewAgentHandler(agentService, routingService)
	ruleHandler := handler.NewRuleHandler(ruleService)

	r := router.Setup(cfg, routingHandler, agentHandler, ruleHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
