package model

import (
	"time"
)

// EventModel 账本事件记录
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventType  string `json:"event_type" gorm:"not null;index"`
	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Data       string `json:"data" gorm:"type:text"`
	Processed  bool   `json:"processed" gorm:"default:false"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
