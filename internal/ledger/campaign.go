package ledger

import (
	"sync"
	"time"
)

// Status 活动状态（由账本状态和当前时间推导，不单独存储）
type Status string

const (
	StatusActive    Status = "active"    // 进行中
	StatusSuccess   Status = "success"   // 已达标，待提取
	StatusFailed    Status = "failed"    // 未达标，可退款
	StatusWithdrawn Status = "withdrawn" // 资金已提取
)

// Campaign 单个众筹活动的账本
// 所有字段由 Registry 在持有 mu 的情况下读写，
// mu 覆盖整个读-改-写序列（包括同步的资金划转调用），
// 以在并发服务中还原串行执行语义
type Campaign struct {
	mu sync.Mutex

	id          int64
	creator     string
	title       string
	description string
	goal        int64
	createdAt   time.Time
	deadline    time.Time

	// amountRaised 是历史累计筹集总额，提取后不清零，
	// 重复提取由 fundsWithdrawn 单独把关
	amountRaised   int64
	goalReached    bool
	fundsWithdrawn bool

	// contributions 记录每个地址的当前出资额，退款时单独清零
	contributions map[string]int64
	// contributors 按首次出资顺序追加，仅用于枚举
	// 出资-全额退款-再出资会产生重复条目，属于已知且可接受的行为
	contributors []string
}

// Details 活动快照
type Details struct {
	Id               int64     `json:"id"`
	Creator          string    `json:"creator"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Goal             int64     `json:"goal"`
	CreatedAt        time.Time `json:"created_at"`
	Deadline         time.Time `json:"deadline"`
	AmountRaised     int64     `json:"amount_raised"`
	GoalReached      bool      `json:"goal_reached"`
	FundsWithdrawn   bool      `json:"funds_withdrawn"`
	ContributorCount int       `json:"contributor_count"`
	Status           Status    `json:"status"`
}

// snapshot 生成活动快照，调用方必须持有 c.mu
func (c *Campaign) snapshot(now time.Time) Details {
	return Details{
		Id:               c.id,
		Creator:          c.creator,
		Title:            c.title,
		Description:      c.description,
		Goal:             c.goal,
		CreatedAt:        c.createdAt,
		Deadline:         c.deadline,
		AmountRaised:     c.amountRaised,
		GoalReached:      c.goalReached,
		FundsWithdrawn:   c.fundsWithdrawn,
		ContributorCount: len(c.contributors),
		Status:           c.status(now),
	}
}

// status 推导活动状态，调用方必须持有 c.mu
func (c *Campaign) status(now time.Time) Status {
	switch {
	case c.fundsWithdrawn:
		return StatusWithdrawn
	case now.Before(c.deadline):
		return StatusActive
	case c.goalReached:
		return StatusSuccess
	default:
		return StatusFailed
	}
}
