package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/treasury"
)

// Registry 活动注册表，持有全部活动账本并分发操作
// 注册表本身是权威状态，数据库只承担审计记录
type Registry struct {
	mu        sync.RWMutex
	campaigns []*Campaign

	clock    Clock
	treasury treasury.Treasury
	notifier Notifier
}

// NewRegistry 创建活动注册表
func NewRegistry(clock Clock, t treasury.Treasury, n Notifier) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	if n == nil {
		n = NopNotifier{}
	}
	return &Registry{
		campaigns: make([]*Campaign, 0),
		clock:     clock,
		treasury:  t,
		notifier:  n,
	}
}

// Create 创建活动，返回新分配的活动ID
// 活动ID从0开始连续递增，分配后永不复用
func (r *Registry) Create(creator, title, description string, goal, durationDays int64) (int64, error) {
	if creator == "" {
		return 0, invalidArgument("发起人地址不能为空")
	}
	if title == "" {
		return 0, invalidArgument("活动标题不能为空")
	}
	if goal <= 0 {
		return 0, invalidArgument("目标金额必须大于0")
	}
	if durationDays <= 0 {
		return 0, invalidArgument("活动时长必须大于0")
	}

	now := r.clock.Now()
	deadline := now.Add(time.Duration(durationDays) * 24 * time.Hour)

	r.mu.Lock()
	id := int64(len(r.campaigns))
	c := &Campaign{
		id:            id,
		creator:       creator,
		title:         title,
		description:   description,
		goal:          goal,
		createdAt:     now,
		deadline:      deadline,
		contributions: make(map[string]int64),
	}
	r.campaigns = append(r.campaigns, c)
	r.mu.Unlock()

	logger.Info("Campaign %d created by %s, goal %d, deadline %s", id, creator, goal, deadline)
	r.notifier.CampaignCreated(id, creator, title, description, goal, deadline)

	return id, nil
}

// Contribute 向活动出资
func (r *Registry) Contribute(ctx context.Context, campaignId int64, contributor string, amount int64) error {
	if contributor == "" {
		return invalidArgument("出资人地址不能为空")
	}
	if amount <= 0 {
		return invalidArgument("出资金额必须大于0")
	}

	c, err := r.lookup(campaignId)
	if err != nil {
		return err
	}

	c.mu.Lock()
	now := r.clock.Now()
	if !now.Before(c.deadline) {
		c.mu.Unlock()
		return invalidState("活动已结束，无法继续出资")
	}

	// 首次出资的判断依据是该地址当前出资额为零，
	// 全额退款后再出资会在 contributors 中产生重复条目（仅枚举用，可接受）
	if c.contributions[contributor] == 0 {
		c.contributors = append(c.contributors, contributor)
	}
	c.contributions[contributor] += amount
	c.amountRaised += amount
	if c.amountRaised >= c.goal {
		c.goalReached = true
	}
	c.mu.Unlock()

	logger.Debug("Campaign %d received %d from %s", campaignId, amount, contributor)
	r.notifier.ContributionMade(campaignId, contributor, amount)

	return nil
}

// Withdraw 发起人在活动达标结束后提取全部资金
// 先提交 fundsWithdrawn 再调用划转原语（checks-effects-interactions），
// 划转失败时回滚标志，保证对调用方呈现全有或全无
func (r *Registry) Withdraw(ctx context.Context, campaignId int64, caller string) error {
	c, err := r.lookup(campaignId)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.creator {
		return unauthorized("只有发起人可以提取资金")
	}
	now := r.clock.Now()
	if now.Before(c.deadline) {
		return invalidState("活动尚未结束，无法提取资金")
	}
	if !c.goalReached {
		return invalidState("目标金额未达成，无法提取资金")
	}
	if c.fundsWithdrawn {
		return invalidState("资金已被提取")
	}
	if c.amountRaised <= 0 {
		return invalidState("没有可提取的资金")
	}

	amount := c.amountRaised
	c.fundsWithdrawn = true
	if err := r.treasury.Transfer(ctx, c.creator, amount); err != nil {
		c.fundsWithdrawn = false
		logger.Error("Campaign %d withdrawal transfer failed: %v", campaignId, err)
		return transferFailed("资金划转失败: %v", err)
	}

	logger.Info("Campaign %d funds withdrawn: %d to %s", campaignId, amount, c.creator)
	r.notifier.FundsWithdrawn(campaignId, c.creator, amount)

	return nil
}

// Refund 活动未达标结束后，出资人取回自己的全部出资
// 与 Withdraw 相同，先清零记账再划转，失败时恢复
func (r *Registry) Refund(ctx context.Context, campaignId int64, contributor string) error {
	if contributor == "" {
		return invalidArgument("出资人地址不能为空")
	}

	c, err := r.lookup(campaignId)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := r.clock.Now()
	if now.Before(c.deadline) {
		return invalidState("活动尚未结束，无法退款")
	}
	if c.goalReached {
		return invalidState("目标金额已达成，无法退款")
	}
	amount := c.contributions[contributor]
	if amount <= 0 {
		return invalidState("没有可退款的出资")
	}

	c.contributions[contributor] = 0
	if err := r.treasury.Transfer(ctx, contributor, amount); err != nil {
		c.contributions[contributor] = amount
		logger.Error("Campaign %d refund transfer failed: %v", campaignId, err)
		return transferFailed("资金划转失败: %v", err)
	}

	logger.Info("Campaign %d refunded %d to %s", campaignId, amount, contributor)
	r.notifier.RefundClaimed(campaignId, contributor, amount)

	return nil
}

// GetDetails 获取活动快照
func (r *Registry) GetDetails(campaignId int64) (Details, error) {
	c, err := r.lookup(campaignId)
	if err != nil {
		return Details{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(r.clock.Now()), nil
}

// GetContribution 获取某地址在活动中的当前出资额（退款后为0）
func (r *Registry) GetContribution(campaignId int64, contributor string) (int64, error) {
	c, err := r.lookup(campaignId)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contributions[contributor], nil
}

// GetContributorCount 获取活动的出资人条目数
func (r *Registry) GetContributorCount(campaignId int64) (int, error) {
	c, err := r.lookup(campaignId)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.contributors), nil
}

// IsActive 活动是否仍在截止时间之前
func (r *Registry) IsActive(campaignId int64) (bool, error) {
	c, err := r.lookup(campaignId)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return r.clock.Now().Before(c.deadline), nil
}

// Count 已注册的活动数量
func (r *Registry) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.campaigns))
}

// Snapshots 获取全部活动的快照，供列表查询和快照落库任务使用
func (r *Registry) Snapshots() []Details {
	r.mu.RLock()
	campaigns := make([]*Campaign, len(r.campaigns))
	copy(campaigns, r.campaigns)
	r.mu.RUnlock()

	now := r.clock.Now()
	details := make([]Details, 0, len(campaigns))
	for _, c := range campaigns {
		c.mu.Lock()
		details = append(details, c.snapshot(now))
		c.mu.Unlock()
	}
	return details
}

// lookup 按ID定位活动，ID不在已分配区间内时返回 NotFound
func (r *Registry) lookup(campaignId int64) (*Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if campaignId < 0 || campaignId >= int64(len(r.campaigns)) {
		return nil, notFound("活动 %d 不存在", campaignId)
	}
	return r.campaigns[campaignId], nil
}
