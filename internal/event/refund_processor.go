package event

import (
	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/model"
)

// refundStore 退款记录的持久化接口
type refundStore interface {
	CreateRefundRecord(record *model.RefundRecordModel) error
}

// RefundProcessor 退款事件处理器
type RefundProcessor struct {
	store refundStore
}

// NewRefundProcessor 创建退款事件处理器
func NewRefundProcessor(store refundStore) *RefundProcessor {
	return &RefundProcessor{store: store}
}

// Process 处理退款事件
func (p *RefundProcessor) Process(ev Event) error {
	record := &model.RefundRecordModel{
		CampaignId: ev.CampaignId,
		Amount:     ev.Amount,
		Address:    ev.Address,
	}

	if err := p.store.CreateRefundRecord(record); err != nil {
		logger.Error("Failed to create refund record: %v", err)
		return err
	}

	logger.Info("Processed refund: %d to %s from campaign %d", ev.Amount, ev.Address, ev.CampaignId)
	return nil
}
