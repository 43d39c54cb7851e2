package task

import (
	"github.com/blues/ccl/internal/config"
	"github.com/blues/ccl/internal/ledger"
	"github.com/blues/ccl/internal/logger"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	registry  *ledger.Registry
	db        *gorm.DB
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(registry *ledger.Registry, db *gorm.DB, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		registry:  registry,
		db:        db,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(registry *ledger.Registry, db *gorm.DB, cfg *config.Config) *Manager {
	manager := NewManager(registry, db, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册活动快照落库任务
	m.RegisterCampaignSnapshotJob()
}

// RegisterCampaignSnapshotJob 注册活动快照落库任务
func (m *Manager) RegisterCampaignSnapshotJob() {
	job := NewCampaignSnapshotJob(m.registry, m.db, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
