package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ccl/internal/model"
	"gorm.io/gorm"
)

// EventLogic 事件业务逻辑
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建事件业务逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// CreateEvent 创建事件记录
func (e *EventLogic) CreateEvent(event *model.EventModel) error {
	if event.EventType == "" {
		return errors.New("事件类型不能为空")
	}

	if err := e.db.Create(event).Error; err != nil {
		return fmt.Errorf("创建事件记录失败: %w", err)
	}

	return nil
}

// GetEvents 获取事件列表
func (e *EventLogic) GetEvents(campaignId int64, eventType string, page, pageSize int) ([]model.EventModel, int64, error) {
	var events []model.EventModel
	var total int64

	// 构建查询条件
	query := e.db.Model(&model.EventModel{})
	if campaignId >= 0 {
		query = query.Where("campaign_id = ?", campaignId)
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件总数失败: %w", err)
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件列表失败: %w", err)
	}

	return events, total, nil
}

// UpdateEventProcessed 更新事件处理状态
func (e *EventLogic) UpdateEventProcessed(id int64, processed bool) error {
	if err := e.db.Model(&model.EventModel{}).Where("id = ?", id).Update("processed", processed).Error; err != nil {
		return fmt.Errorf("更新事件处理状态失败: %w", err)
	}

	return nil
}
