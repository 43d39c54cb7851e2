package event

import (
	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/model"
)

// withdrawStore 提取记录的持久化接口
type withdrawStore interface {
	CreateWithdrawRecord(record *model.WithdrawRecordModel) error
}

// WithdrawProcessor 资金提取事件处理器
type WithdrawProcessor struct {
	store withdrawStore
}

// NewWithdrawProcessor 创建资金提取事件处理器
func NewWithdrawProcessor(store withdrawStore) *WithdrawProcessor {
	return &WithdrawProcessor{store: store}
}

// Process 处理资金提取事件
func (p *WithdrawProcessor) Process(ev Event) error {
	record := &model.WithdrawRecordModel{
		CampaignId: ev.CampaignId,
		Amount:     ev.Amount,
		Address:    ev.Address,
	}

	if err := p.store.CreateWithdrawRecord(record); err != nil {
		logger.Error("Failed to create withdraw record: %v", err)
		return err
	}

	logger.Info("Processed withdrawal: %d to %s from campaign %d", ev.Amount, ev.Address, ev.CampaignId)
	return nil
}
