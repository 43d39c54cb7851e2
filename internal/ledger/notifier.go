package ledger

import "time"

// Notifier 接收账本操作成功后发出的通知
// 通知在操作（含资金划转）成功提交后发出，失败的操作不产生通知
type Notifier interface {
	CampaignCreated(campaignId int64, creator, title, description string, goal int64, deadline time.Time)
	ContributionMade(campaignId int64, contributor string, amount int64)
	FundsWithdrawn(campaignId int64, creator string, amount int64)
	RefundClaimed(campaignId int64, contributor string, amount int64)
}

// NopNotifier 丢弃所有通知
type NopNotifier struct{}

func (NopNotifier) CampaignCreated(int64, string, string, string, int64, time.Time) {}
func (NopNotifier) ContributionMade(int64, string, int64)                           {}
func (NopNotifier) FundsWithdrawn(int64, string, int64)                             {}
func (NopNotifier) RefundClaimed(int64, string, int64)                              {}
