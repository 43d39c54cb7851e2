package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ccl/internal/model"
	"gorm.io/gorm"
)

// WithdrawRecordLogic 提取记录业务逻辑
type WithdrawRecordLogic struct {
	db *gorm.DB
}

// NewWithdrawRecordLogic 创建提取记录业务逻辑
func NewWithdrawRecordLogic(db *gorm.DB) *WithdrawRecordLogic {
	return &WithdrawRecordLogic{db: db}
}

// CreateWithdrawRecord 创建提取记录
func (w *WithdrawRecordLogic) CreateWithdrawRecord(record *model.WithdrawRecordModel) error {
	if record.Amount <= 0 {
		return errors.New("提取金额必须大于0")
	}
	if record.Address == "" {
		return errors.New("发起人地址不能为空")
	}

	if err := w.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建提取记录失败: %w", err)
	}

	return nil
}

// GetCampaignWithdrawRecord 获取活动的提取记录
func (w *WithdrawRecordLogic) GetCampaignWithdrawRecord(campaignId int64) (*model.WithdrawRecordModel, error) {
	var record model.WithdrawRecordModel
	if err := w.db.Where("campaign_id = ?", campaignId).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("提取记录不存在")
		}
		return nil, fmt.Errorf("获取提取记录失败: %w", err)
	}

	return &record, nil
}
