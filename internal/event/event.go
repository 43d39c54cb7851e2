package event

import "time"

// Type 账本事件类型
type Type string

const (
	TypeCampaignCreated  Type = "CampaignCreated"  // 活动创建
	TypeContributionMade Type = "ContributionMade" // 出资
	TypeFundsWithdrawn   Type = "FundsWithdrawn"   // 资金提取
	TypeRefundClaimed    Type = "RefundClaimed"    // 退款
)

// Event 账本操作成功后发出的通知
type Event struct {
	Type        Type      `json:"type"`
	CampaignId  int64     `json:"campaign_id"`
	Address     string    `json:"address"`
	Amount      int64     `json:"amount,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Goal        int64     `json:"goal,omitempty"`
	Deadline    time.Time `json:"deadline,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
