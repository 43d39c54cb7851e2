package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ccl/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignRecordLogic 活动快照记录业务逻辑
type CampaignRecordLogic struct {
	db *gorm.DB
}

// NewCampaignRecordLogic 创建活动快照记录业务逻辑
func NewCampaignRecordLogic(db *gorm.DB) *CampaignRecordLogic {
	return &CampaignRecordLogic{db: db}
}

// UpsertCampaignRecord 写入或更新活动快照
func (c *CampaignRecordLogic) UpsertCampaignRecord(record *model.CampaignModel) error {
	if record.Title == "" {
		return errors.New("活动标题不能为空")
	}
	if record.CreatorAddress == "" {
		return errors.New("发起人地址不能为空")
	}

	// 按主键冲突时更新可变字段
	err := c.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "amount_raised", "status", "goal_reached",
			"funds_withdrawn", "contributor_count", "updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("写入活动快照失败: %w", err)
	}

	return nil
}

// GetCampaignRecords 获取活动快照列表
func (c *CampaignRecordLogic) GetCampaignRecords(status string, page, pageSize int) ([]model.CampaignModel, int64, error) {
	var records []model.CampaignModel
	var total int64

	query := c.db.Model(&model.CampaignModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动总数失败: %w", err)
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id ASC").Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动列表失败: %w", err)
	}

	return records, total, nil
}

// GetCampaignRecord 获取单个活动快照
func (c *CampaignRecordLogic) GetCampaignRecord(id int64) (*model.CampaignModel, error) {
	var record model.CampaignModel
	if err := c.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("活动不存在")
		}
		return nil, fmt.Errorf("获取活动快照失败: %w", err)
	}

	return &record, nil
}
