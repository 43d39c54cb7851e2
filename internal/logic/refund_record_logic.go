package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ccl/internal/model"
	"gorm.io/gorm"
)

// RefundRecordLogic 退款记录业务逻辑
type RefundRecordLogic struct {
	db *gorm.DB
}

// NewRefundRecordLogic 创建退款记录业务逻辑
func NewRefundRecordLogic(db *gorm.DB) *RefundRecordLogic {
	return &RefundRecordLogic{db: db}
}

// CreateRefundRecord 创建退款记录
func (r *RefundRecordLogic) CreateRefundRecord(record *model.RefundRecordModel) error {
	// 验证退款数据
	if record.Amount <= 0 {
		return errors.New("退款金额必须大于0")
	}
	if record.Address == "" {
		return errors.New("出资人地址不能为空")
	}

	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建退款记录失败: %w", err)
	}

	return nil
}

// GetCampaignRefundRecords 获取活动退款记录
func (r *RefundRecordLogic) GetCampaignRefundRecords(campaignId int64, page, pageSize int) ([]model.RefundRecordModel, int64, error) {
	var records []model.RefundRecordModel
	var total int64

	// 获取总数
	if err := r.db.Model(&model.RefundRecordModel{}).Where("campaign_id = ?", campaignId).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取退款记录总数失败: %w", err)
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := r.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取退款记录失败: %w", err)
	}

	return records, total, nil
}
