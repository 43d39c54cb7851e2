package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ccl/internal/model"
	"gorm.io/gorm"
)

// ContributeRecordLogic 出资记录业务逻辑
type ContributeRecordLogic struct {
	db *gorm.DB
}

// NewContributeRecordLogic 创建出资记录业务逻辑
func NewContributeRecordLogic(db *gorm.DB) *ContributeRecordLogic {
	return &ContributeRecordLogic{db: db}
}

// CreateContributeRecord 创建出资记录
func (c *ContributeRecordLogic) CreateContributeRecord(record *model.ContributeRecordModel) error {
	// 验证出资数据
	if err := c.validateContributeRecord(record); err != nil {
		return err
	}

	if err := c.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建出资记录失败: %w", err)
	}

	return nil
}

// GetCampaignContributeRecords 获取活动出资记录
func (c *ContributeRecordLogic) GetCampaignContributeRecords(campaignId int64, page, pageSize int) ([]model.ContributeRecordModel, int64, error) {
	var records []model.ContributeRecordModel
	var total int64

	// 获取总数
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("campaign_id = ?", campaignId).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取出资记录总数失败: %w", err)
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := c.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取出资记录失败: %w", err)
	}

	return records, total, nil
}

// GetContributeStats 获取活动出资统计信息
func (c *ContributeRecordLogic) GetContributeStats(campaignId int64) (map[string]interface{}, error) {
	var stats struct {
		TotalContributions int64 `json:"total_contributions"`
		TotalAmount        int64 `json:"total_amount"`
		UniqueContributors int64 `json:"unique_contributors"`
	}

	// 总出资记录数
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("campaign_id = ?", campaignId).Count(&stats.TotalContributions).Error; err != nil {
		return nil, fmt.Errorf("获取总出资记录数失败: %w", err)
	}

	// 总出资金额
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("campaign_id = ?", campaignId).Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalAmount).Error; err != nil {
		return nil, fmt.Errorf("获取总出资金额失败: %w", err)
	}

	// 唯一出资人数量
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("campaign_id = ?", campaignId).Select("COUNT(DISTINCT address)").Scan(&stats.UniqueContributors).Error; err != nil {
		return nil, fmt.Errorf("获取唯一出资人数量失败: %w", err)
	}

	return map[string]interface{}{
		"total_contributions": stats.TotalContributions,
		"total_amount":        stats.TotalAmount,
		"unique_contributors": stats.UniqueContributors,
	}, nil
}

// validateContributeRecord 验证出资数据
func (c *ContributeRecordLogic) validateContributeRecord(record *model.ContributeRecordModel) error {
	if record.CampaignId < 0 {
		return errors.New("活动ID非法")
	}
	if record.Amount <= 0 {
		return errors.New("出资金额必须大于0")
	}
	if record.Address == "" {
		return errors.New("出资人地址不能为空")
	}
	return nil
}
