package event

import (
	"sync"
	"testing"
	"time"

	"github.com/blues/ccl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventStore 内存事件存储
type fakeEventStore struct {
	mu        sync.Mutex
	nextId    int64
	saved     []*model.EventModel
	processed map[int64]bool
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{processed: make(map[int64]bool)}
}

func (s *fakeEventStore) CreateEvent(event *model.EventModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	event.Id = s.nextId
	s.saved = append(s.saved, event)
	return nil
}

func (s *fakeEventStore) UpdateEventProcessed(id int64, processed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed[id] = processed
	return nil
}

// fakeProcessor 收集处理过的事件
type fakeProcessor struct {
	mu     sync.Mutex
	events []Event
	done   chan struct{}
}

func newFakeProcessor(expected int) *fakeProcessor {
	return &fakeProcessor{done: make(chan struct{}, expected)}
}

func (p *fakeProcessor) Process(ev Event) error {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *fakeProcessor) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-p.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func TestMonitorDispatchesToProcessor(t *testing.T) {
	store := newFakeEventStore()
	processor := newFakeProcessor(2)
	m := newMonitor(store, map[Type]Processor{
		TypeContributionMade: processor,
		TypeRefundClaimed:    processor,
	})
	m.Start()
	defer m.Stop()

	m.ContributionMade(3, "0xAlice", 25)
	m.RefundClaimed(3, "0xAlice", 25)
	processor.wait(t, 2)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	require.Len(t, processor.events, 2)

	types := map[Type]Event{}
	for _, ev := range processor.events {
		types[ev.Type] = ev
	}
	contributed, ok := types[TypeContributionMade]
	require.True(t, ok)
	assert.Equal(t, int64(3), contributed.CampaignId)
	assert.Equal(t, "0xAlice", contributed.Address)
	assert.Equal(t, int64(25), contributed.Amount)
	_, ok = types[TypeRefundClaimed]
	require.True(t, ok)
}

func TestMonitorPersistsAndMarksEvents(t *testing.T) {
	store := newFakeEventStore()
	processor := newFakeProcessor(1)
	m := newMonitor(store, map[Type]Processor{
		TypeFundsWithdrawn: processor,
	})
	m.Start()
	defer m.Stop()

	m.FundsWithdrawn(7, "0xCreator", 1000)
	processor.wait(t, 1)

	// 标记已处理发生在处理器返回之后，轮询等待
	deadline := time.Now().Add(2 * time.Second)
	for {
		store.mu.Lock()
		marked := len(store.saved) == 1 && store.processed[store.saved[0].Id]
		store.mu.Unlock()
		if marked {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("event was not marked processed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, string(TypeFundsWithdrawn), store.saved[0].EventType)
	assert.Equal(t, int64(7), store.saved[0].CampaignId)
	assert.Contains(t, store.saved[0].Data, "0xCreator")
}

func TestMonitorIgnoresUnknownType(t *testing.T) {
	store := newFakeEventStore()
	m := newMonitor(store, map[Type]Processor{})
	m.Start()
	defer m.Stop()

	m.CampaignCreated(0, "0xCreator", "t", "d", 100, time.Now())

	// 未注册处理器的事件仍会落库，但不报错
	deadline := time.Now().Add(2 * time.Second)
	for {
		store.mu.Lock()
		saved := len(store.saved)
		store.mu.Unlock()
		if saved == 1 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("event was not persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
