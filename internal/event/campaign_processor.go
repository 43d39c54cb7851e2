package event

import (
	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/model"
)

// campaignStore 活动快照的持久化接口
type campaignStore interface {
	UpsertCampaignRecord(record *model.CampaignModel) error
}

// CampaignProcessor 活动创建事件处理器
type CampaignProcessor struct {
	store campaignStore
}

// NewCampaignProcessor 创建活动创建事件处理器
func NewCampaignProcessor(store campaignStore) *CampaignProcessor {
	return &CampaignProcessor{store: store}
}

// Process 处理活动创建事件
func (p *CampaignProcessor) Process(ev Event) error {
	record := &model.CampaignModel{
		Id:             ev.CampaignId,
		Title:          ev.Title,
		Description:    ev.Description,
		Goal:           ev.Goal,
		Deadline:       ev.Deadline,
		Status:         model.CampaignStatusActive,
		CreatorAddress: ev.Address,
	}

	if err := p.store.UpsertCampaignRecord(record); err != nil {
		logger.Error("Failed to create campaign record: %v", err)
		return err
	}

	logger.Info("Processed campaign created: %d by %s, goal %d", ev.CampaignId, ev.Address, ev.Goal)
	return nil
}
