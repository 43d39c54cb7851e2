package event

import (
	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/model"
)

// contributeStore 出资记录的持久化接口
type contributeStore interface {
	CreateContributeRecord(record *model.ContributeRecordModel) error
}

// ContributeProcessor 出资事件处理器
type ContributeProcessor struct {
	store contributeStore
}

// NewContributeProcessor 创建出资事件处理器
func NewContributeProcessor(store contributeStore) *ContributeProcessor {
	return &ContributeProcessor{store: store}
}

// Process 处理出资事件
func (p *ContributeProcessor) Process(ev Event) error {
	record := &model.ContributeRecordModel{
		CampaignId: ev.CampaignId,
		Amount:     ev.Amount,
		Address:    ev.Address,
	}

	if err := p.store.CreateContributeRecord(record); err != nil {
		logger.Error("Failed to create contribution record: %v", err)
		return err
	}

	logger.Info("Processed contribution: %d from %s to campaign %d", ev.Amount, ev.Address, ev.CampaignId)
	return nil
}
