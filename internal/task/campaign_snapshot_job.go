package task

import (
	"time"

	"github.com/blues/ccl/internal/config"
	"github.com/blues/ccl/internal/ledger"
	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/logic"
	"github.com/blues/ccl/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CampaignSnapshotJob 活动快照落库任务
// 周期性把内存注册表的快照写入campaign表，供读侧查询和审计
type CampaignSnapshotJob struct {
	registry      *ledger.Registry
	campaignLogic *logic.CampaignRecordLogic
	config        *config.Config
}

// NewCampaignSnapshotJob 创建活动快照落库任务
func NewCampaignSnapshotJob(registry *ledger.Registry, db *gorm.DB, cfg *config.Config) *CampaignSnapshotJob {
	return &CampaignSnapshotJob{
		registry:      registry,
		campaignLogic: logic.NewCampaignRecordLogic(db),
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignSnapshotJob) GetName() string {
	return "campaign_snapshot"
}

// GetSchedule 获取调度配置
func (j *CampaignSnapshotJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignSnapshotJob) Execute() {
	logger.Debug("Starting campaign snapshot task")

	snapshots := j.registry.Snapshots()
	savedCount := 0

	for _, s := range snapshots {
		record := &model.CampaignModel{
			Id:               s.Id,
			Title:            s.Title,
			Description:      s.Description,
			Goal:             s.Goal,
			AmountRaised:     s.AmountRaised,
			Deadline:         s.Deadline,
			Status:           model.CampaignStatus(s.Status),
			GoalReached:      s.GoalReached,
			FundsWithdrawn:   s.FundsWithdrawn,
			CreatorAddress:   s.Creator,
			ContributorCount: s.ContributorCount,
		}

		if err := j.campaignLogic.UpsertCampaignRecord(record); err != nil {
			logger.Error("Failed to save snapshot for campaign %d: %v", s.Id, err)
			continue
		}
		savedCount++
	}

	logger.Debug("Campaign snapshot completed, saved %d of %d campaigns", savedCount, len(snapshots))
}
