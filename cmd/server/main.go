package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blues/ccl/internal/config"
	"github.com/blues/ccl/internal/database"
	"github.com/blues/ccl/internal/ethereum"
	"github.com/blues/ccl/internal/event"
	"github.com/blues/ccl/internal/ledger"
	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/router"
	"github.com/blues/ccl/internal/task"
	"github.com/blues/ccl/internal/treasury"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志器
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	} else if l, err := logger.New(level); err == nil {
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化资金库
	vault, err := buildTreasury(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize treasury: %v", err)
	}

	// 启动事件监控器
	monitor := event.NewMonitor(db)
	monitor.Start()
	defer monitor.Stop()

	// 创建活动注册表
	registry := ledger.NewRegistry(ledger.SystemClock{}, vault, monitor)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(registry, db, cfg)

	// 启动定时任务
	manager := task.Start(registry, db, cfg)
	defer manager.Stop()

	// 监听退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutting down")
		manager.Stop()
		monitor.Stop()
		logger.Sync()
		os.Exit(0)
	}()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// buildTreasury 按配置选择资金划转后端
func buildTreasury(cfg *config.Config) (treasury.Treasury, error) {
	switch cfg.Treasury.Backend {
	case "ethereum":
		client, err := ethereum.Init(cfg.Treasury)
		if err != nil {
			return nil, err
		}
		block, err := client.CurrentBlockNumber(context.Background())
		if err != nil {
			return nil, fmt.Errorf("连接节点失败: %w", err)
		}
		logger.Info("Treasury backed by ethereum account %s at block %d", client.AccountAddress().Hex(), block)
		return treasury.NewEth(client), nil
	default:
		logger.Info("Treasury backed by in-process vault")
		return treasury.NewVault(), nil
	}
}
