package model

import (
	"time"
)

// WithdrawRecordModel 提取记录，每个活动最多一条
type WithdrawRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;uniqueIndex"`
	Amount     int64  `json:"amount" gorm:"not null"`
	Address    string `json:"address" gorm:"not null"`
}

// TableName 自定义表名
func (WithdrawRecordModel) TableName() string {
	return "withdraw_record"
}
