package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 可手动推进的模拟时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeTreasury 记录划转并可注入失败
type fakeTreasury struct {
	mu        sync.Mutex
	transfers map[string]int64
	failNext  error
}

func newFakeTreasury() *fakeTreasury {
	return &fakeTreasury{transfers: make(map[string]int64)}
}

func (t *fakeTreasury) Transfer(ctx context.Context, to string, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failNext != nil {
		err := t.failNext
		t.failNext = nil
		return err
	}
	t.transfers[to] += amount
	return nil
}

func (t *fakeTreasury) received(addr string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transfers[addr]
}

// recordingNotifier 记录收到的通知
type recordingNotifier struct {
	mu      sync.Mutex
	created []int64
	events  []string
}

func (n *recordingNotifier) CampaignCreated(id int64, creator, title, description string, goal int64, deadline time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, id)
	n.events = append(n.events, "created")
}

func (n *recordingNotifier) ContributionMade(id int64, contributor string, amount int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "contributed")
}

func (n *recordingNotifier) FundsWithdrawn(id int64, creator string, amount int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "withdrawn")
}

func (n *recordingNotifier) RefundClaimed(id int64, contributor string, amount int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, "refunded")
}

func (n *recordingNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

const (
	creator     = "0xCreator"
	contributor = "0xAlice"
	other       = "0xBob"
)

func newTestRegistry(t *testing.T) (*Registry, *fakeClock, *fakeTreasury) {
	t.Helper()
	clock := newFakeClock()
	vault := newFakeTreasury()
	return NewRegistry(clock, vault, nil), clock, vault
}

func TestCreateAssignsDenseIds(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	for i := int64(0); i < 5; i++ {
		id, err := r.Create(creator, "救灾众筹", "", 100, 1)
		require.NoError(t, err)
		require.Equal(t, i, id)
	}
	require.Equal(t, int64(5), r.Count())
}

func TestCreateValidation(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	tests := []struct {
		name         string
		creator      string
		title        string
		goal         int64
		durationDays int64
	}{
		{"empty creator", "", "t", 100, 1},
		{"empty title", creator, "", 100, 1},
		{"zero goal", creator, "t", 0, 1},
		{"negative goal", creator, "t", -5, 1},
		{"zero duration", creator, "t", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Create(tt.creator, tt.title, "", tt.goal, tt.durationDays)
			require.Error(t, err)
			assert.Equal(t, KindInvalidArgument, KindOf(err))
		})
	}

	// 失败的创建不占用ID
	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
}

func TestLookupUnknownCampaign(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.GetDetails(42)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = r.Contribute(ctx, 42, contributor, 10)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = r.Withdraw(ctx, -1, creator)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = r.Refund(ctx, 0, contributor)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestContributeAccumulates(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)

	require.NoError(t, r.Contribute(ctx, id, contributor, 25))
	require.NoError(t, r.Contribute(ctx, id, contributor, 10))
	require.NoError(t, r.Contribute(ctx, id, other, 5))

	details, err := r.GetDetails(id)
	require.NoError(t, err)
	assert.Equal(t, int64(40), details.AmountRaised)
	assert.False(t, details.GoalReached)

	amount, err := r.GetContribution(id, contributor)
	require.NoError(t, err)
	assert.Equal(t, int64(35), amount)

	// 同一地址多次出资只产生一个出资人条目
	count, err := r.GetContributorCount(id)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestContributeValidation(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)

	err = r.Contribute(ctx, id, contributor, 0)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	err = r.Contribute(ctx, id, "", 10)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	// 失败的出资不改变状态
	details, err := r.GetDetails(id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), details.AmountRaised)
}

func TestContributeAfterDeadlineFails(t *testing.T) {
	r, clock, _ := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)

	err = r.Contribute(ctx, id, contributor, 10)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestGoalReachedIsSticky(t *testing.T) {
	r, clock, _ := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)

	require.NoError(t, r.Contribute(ctx, id, contributor, 100))
	details, err := r.GetDetails(id)
	require.NoError(t, err)
	assert.True(t, details.GoalReached)

	// 超额出资和后续操作都不改变已达标状态
	require.NoError(t, r.Contribute(ctx, id, other, 50))
	clock.Advance(48 * time.Hour)
	details, err = r.GetDetails(id)
	require.NoError(t, err)
	assert.True(t, details.GoalReached)
	assert.Equal(t, int64(150), details.AmountRaised)
}

// TestWithdrawAfterGoalMet 场景A：达标后发起人提取全部资金，退款全部被拒
func TestWithdrawAfterGoalMet(t *testing.T) {
	r, clock, vault := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 60))
	require.NoError(t, r.Contribute(ctx, id, other, 40))

	details, err := r.GetDetails(id)
	require.NoError(t, err)
	assert.True(t, details.GoalReached)
	assert.Equal(t, int64(100), details.AmountRaised)

	clock.Advance(24 * time.Hour)

	require.NoError(t, r.Withdraw(ctx, id, creator))
	assert.Equal(t, int64(100), vault.received(creator))

	// 二次提取失败
	err = r.Withdraw(ctx, id, creator)
	assert.Equal(t, KindInvalidState, KindOf(err))

	// 达标活动不允许退款
	err = r.Refund(ctx, id, contributor)
	assert.Equal(t, KindInvalidState, KindOf(err))

	// amountRaised 保留为历史总额
	details, err = r.GetDetails(id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), details.AmountRaised)
	assert.True(t, details.FundsWithdrawn)
	assert.Equal(t, StatusWithdrawn, details.Status)
}

// TestRefundAfterGoalMissed 场景B：未达标活动出资人取回出资，重复退款被拒
func TestRefundAfterGoalMissed(t *testing.T) {
	r, clock, vault := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 30))

	clock.Advance(24 * time.Hour)

	details, err := r.GetDetails(id)
	require.NoError(t, err)
	assert.False(t, details.GoalReached)
	assert.Equal(t, StatusFailed, details.Status)

	require.NoError(t, r.Refund(ctx, id, contributor))
	assert.Equal(t, int64(30), vault.received(contributor))

	amount, err := r.GetContribution(id, contributor)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)

	// 重复退款失败
	err = r.Refund(ctx, id, contributor)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))

	// 从未出资的地址也无法退款
	err = r.Refund(ctx, id, other)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

// TestWithdrawUnauthorized 场景C：非发起人提取在任何状态下都被拒
func TestWithdrawUnauthorized(t *testing.T) {
	r, clock, _ := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 100))

	err = r.Withdraw(ctx, id, other)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	clock.Advance(24 * time.Hour)
	err = r.Withdraw(ctx, id, other)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

// TestWithdrawBeforeDeadline 场景D：即使已达标，截止前提取也被拒
func TestWithdrawBeforeDeadline(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 100))

	err = r.Withdraw(ctx, id, creator)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestWithdrawGoalNotReached(t *testing.T) {
	r, clock, _ := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 99))

	clock.Advance(24 * time.Hour)

	err = r.Withdraw(ctx, id, creator)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestWithdrawTransferFailureRollsBack(t *testing.T) {
	r, clock, vault := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 100))
	clock.Advance(24 * time.Hour)

	vault.failNext = errors.New("recipient rejected")
	err = r.Withdraw(ctx, id, creator)
	require.Error(t, err)
	assert.Equal(t, KindTransferFailed, KindOf(err))
	assert.Equal(t, int64(0), vault.received(creator))

	// 划转失败后标志回滚，重试可以成功
	details, err := r.GetDetails(id)
	require.NoError(t, err)
	assert.False(t, details.FundsWithdrawn)

	require.NoError(t, r.Withdraw(ctx, id, creator))
	assert.Equal(t, int64(100), vault.received(creator))
}

func TestRefundTransferFailureRollsBack(t *testing.T) {
	r, clock, vault := newTestRegistry(t)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 30))
	clock.Advance(24 * time.Hour)

	vault.failNext = errors.New("recipient rejected")
	err = r.Refund(ctx, id, contributor)
	require.Error(t, err)
	assert.Equal(t, KindTransferFailed, KindOf(err))

	// 划转失败后出资记录恢复，重试可以成功
	amount, err := r.GetContribution(id, contributor)
	require.NoError(t, err)
	assert.Equal(t, int64(30), amount)

	require.NoError(t, r.Refund(ctx, id, contributor))
	assert.Equal(t, int64(30), vault.received(contributor))
}

func TestIsActive(t *testing.T) {
	r, clock, _ := newTestRegistry(t)

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)

	active, err := r.IsActive(id)
	require.NoError(t, err)
	assert.True(t, active)

	clock.Advance(24 * time.Hour)

	active, err = r.IsActive(id)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestGetDetailsSnapshot(t *testing.T) {
	r, clock, _ := newTestRegistry(t)
	ctx := context.Background()

	createdAt := clock.Now()
	id, err := r.Create(creator, "救灾众筹", "为灾区筹款", 100, 2)
	require.NoError(t, err)

	details, err := r.GetDetails(id)
	require.NoError(t, err)
	assert.Equal(t, id, details.Id)
	assert.Equal(t, creator, details.Creator)
	assert.Equal(t, "救灾众筹", details.Title)
	assert.Equal(t, "为灾区筹款", details.Description)
	assert.Equal(t, int64(100), details.Goal)
	assert.Equal(t, createdAt.Add(48*time.Hour), details.Deadline)
	assert.Equal(t, StatusActive, details.Status)

	require.NoError(t, r.Contribute(ctx, id, contributor, 100))
	clock.Advance(48 * time.Hour)

	details, err = r.GetDetails(id)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, details.Status)
}

func TestSnapshots(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	for i := 0; i < 3; i++ {
		_, err := r.Create(creator, "t", "", 100, 1)
		require.NoError(t, err)
	}

	snapshots := r.Snapshots()
	require.Len(t, snapshots, 3)
	for i, s := range snapshots {
		assert.Equal(t, int64(i), s.Id)
	}
}

func TestNotificationsEmittedOnlyOnSuccess(t *testing.T) {
	clock := newFakeClock()
	vault := newFakeTreasury()
	notifier := &recordingNotifier{}
	r := NewRegistry(clock, vault, notifier)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 100))

	// 失败的操作不产生通知
	_ = r.Withdraw(ctx, id, creator)
	assert.Equal(t, []string{"created", "contributed"}, notifier.recorded())

	clock.Advance(24 * time.Hour)

	// 划转失败同样不产生通知
	vault.failNext = errors.New("boom")
	_ = r.Withdraw(ctx, id, creator)
	assert.Equal(t, []string{"created", "contributed"}, notifier.recorded())

	require.NoError(t, r.Withdraw(ctx, id, creator))
	assert.Equal(t, []string{"created", "contributed", "withdrawn"}, notifier.recorded())
}

func TestRefundNotification(t *testing.T) {
	clock := newFakeClock()
	vault := newFakeTreasury()
	notifier := &recordingNotifier{}
	r := NewRegistry(clock, vault, notifier)
	ctx := context.Background()

	id, err := r.Create(creator, "t", "", 100, 1)
	require.NoError(t, err)
	require.NoError(t, r.Contribute(ctx, id, contributor, 30))
	clock.Advance(24 * time.Hour)

	require.NoError(t, r.Refund(ctx, id, contributor))
	assert.Equal(t, []string{"created", "contributed", "refunded"}, notifier.recorded())
}
