package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blues/ccl/internal/logger"
	"github.com/blues/ccl/internal/logic"
	"github.com/blues/ccl/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

const (
	queueSize = 256
	poolSize  = 8
)

// eventStore 事件记录的持久化接口
type eventStore interface {
	CreateEvent(event *model.EventModel) error
	UpdateEventProcessed(id int64, processed bool) error
}

// Processor 事件处理器
type Processor interface {
	Process(ev Event) error
}

// Monitor 账本事件监控器，实现 ledger.Notifier
// 通知先进入缓冲队列，由协程池分发给各处理器落库，
// 账本操作路径上不等待持久化完成
type Monitor struct {
	store      eventStore
	processors map[Type]Processor
	pool       *ants.Pool
	events     chan Event
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewMonitor 创建事件监控器
func NewMonitor(db *gorm.DB) *Monitor {
	processors := map[Type]Processor{
		TypeCampaignCreated:  NewCampaignProcessor(logic.NewCampaignRecordLogic(db)),
		TypeContributionMade: NewContributeProcessor(logic.NewContributeRecordLogic(db)),
		TypeRefundClaimed:    NewRefundProcessor(logic.NewRefundRecordLogic(db)),
		TypeFundsWithdrawn:   NewWithdrawProcessor(logic.NewWithdrawRecordLogic(db)),
	}
	return newMonitor(logic.NewEventLogic(db), processors)
}

// newMonitor 以显式依赖创建事件监控器
func newMonitor(store eventStore, processors map[Type]Processor) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Fatal("Failed to create event worker pool: %v", err)
	}

	return &Monitor{
		store:      store,
		processors: processors,
		pool:       pool,
		events:     make(chan Event, queueSize),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start 启动事件分发循环
func (m *Monitor) Start() {
	logger.Info("Starting ledger event monitor")
	go m.loop()
}

// Stop 停止监控并释放协程池
func (m *Monitor) Stop() {
	m.cancel()
	m.pool.Release()
	logger.Info("Ledger event monitor stopped")
}

// loop 事件分发循环
func (m *Monitor) loop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case ev := <-m.events:
			if err := m.pool.Submit(func() {
				if err := m.handleEvent(ev); err != nil {
					logger.Error("Error handling event %s for campaign %d: %v", ev.Type, ev.CampaignId, err)
				}
			}); err != nil {
				logger.Error("Failed to submit event to pool: %v", err)
			}
		}
	}
}

// handleEvent 持久化事件并分发给对应处理器
func (m *Monitor) handleEvent(ev Event) error {
	// 序列化事件数据
	dataJSON, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	// 创建事件记录
	record := &model.EventModel{
		EventType:  string(ev.Type),
		CampaignId: ev.CampaignId,
		Data:       string(dataJSON),
		Processed:  false,
	}
	if err := m.store.CreateEvent(record); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	// 分发给处理器
	processor, ok := m.processors[ev.Type]
	if !ok {
		logger.Warn("Unknown event type: %s", ev.Type)
		return nil
	}
	if err := processor.Process(ev); err != nil {
		return err
	}

	// 标记事件为已处理
	if err := m.store.UpdateEventProcessed(record.Id, true); err != nil {
		return fmt.Errorf("failed to mark event as processed: %w", err)
	}

	return nil
}

// enqueue 事件入队，队列满时丢弃并告警（审计链路不阻塞账本操作）
func (m *Monitor) enqueue(ev Event) {
	select {
	case m.events <- ev:
	default:
		logger.Warn("Event queue full, dropping %s for campaign %d", ev.Type, ev.CampaignId)
	}
}

// CampaignCreated 实现 ledger.Notifier
func (m *Monitor) CampaignCreated(campaignId int64, creator, title, description string, goal int64, deadline time.Time) {
	m.enqueue(Event{
		Type:        TypeCampaignCreated,
		CampaignId:  campaignId,
		Address:     creator,
		Title:       title,
		Description: description,
		Goal:        goal,
		Deadline:    deadline,
		OccurredAt:  time.Now(),
	})
}

// ContributionMade 实现 ledger.Notifier
func (m *Monitor) ContributionMade(campaignId int64, contributor string, amount int64) {
	m.enqueue(Event{
		Type:       TypeContributionMade,
		CampaignId: campaignId,
		Address:    contributor,
		Amount:     amount,
		OccurredAt: time.Now(),
	})
}

// FundsWithdrawn 实现 ledger.Notifier
func (m *Monitor) FundsWithdrawn(campaignId int64, creator string, amount int64) {
	m.enqueue(Event{
		Type:       TypeFundsWithdrawn,
		CampaignId: campaignId,
		Address:    creator,
		Amount:     amount,
		OccurredAt: time.Now(),
	})
}

// RefundClaimed 实现 ledger.Notifier
func (m *Monitor) RefundClaimed(campaignId int64, contributor string, amount int64) {
	m.enqueue(Event{
		Type:       TypeRefundClaimed,
		CampaignId: campaignId,
		Address:    contributor,
		Amount:     amount,
		OccurredAt: time.Now(),
	})
}
