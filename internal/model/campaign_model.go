package model

import (
	"time"
)

// CampaignModel 活动快照记录，由快照任务周期性落库供读侧查询
// 内存注册表是权威状态，本表仅用于审计和展示
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// 众筹信息
	Goal         int64 `json:"goal" gorm:"not null"`
	AmountRaised int64 `json:"amount_raised" gorm:"default:0"`

	// 时间信息
	Deadline time.Time `json:"deadline" gorm:"not null"`

	// 状态
	Status         CampaignStatus `json:"status" gorm:"default:'active'"`
	GoalReached    bool           `json:"goal_reached" gorm:"default:false"`
	FundsWithdrawn bool           `json:"funds_withdrawn" gorm:"default:false"`

	// 发起人信息
	CreatorAddress string `json:"creator_address" gorm:"not null"`

	// 出资人条目数
	ContributorCount int `json:"contributor_count" gorm:"default:0"`
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"    // 进行中
	CampaignStatusSuccess   CampaignStatus = "success"   // 已达标，待提取
	CampaignStatusFailed    CampaignStatus = "failed"    // 未达标，可退款
	CampaignStatusWithdrawn CampaignStatus = "withdrawn" // 资金已提取
)

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
