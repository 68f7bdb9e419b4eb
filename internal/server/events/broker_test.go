package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSubscriber is a mock subscriber for testing.
type mockSubscriber struct {
	events []Event
	mu     sync.Mutex
	closed bool
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{
		events: make([]Event, 0),
	}
}

func (m *mockSubscriber) Send(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSubscriber) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func (m *mockSubscriber) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

func (m *mockSubscriber) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func TestBroker_SubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		b.Subscribe(newMockSubscriber())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe blocked without Run")
	}
}

func TestBroker_FanOutInOrder(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first, second := newMockSubscriber(), newMockSubscriber()
	b.Subscribe(first)
	b.Subscribe(second)
	go b.Run(ctx)

	require.Eventually(t, func() bool { return b.SubscriberCount() == 2 }, time.Second, 5*time.Millisecond)

	b.Publish(MemberAdded, map[string]any{"slug": "ayse-yilmaz"})
	b.Publish(MemberRemoved, map[string]any{"slug": "ali-veli"})
	b.Publish(ChamberReloaded, nil)

	require.Eventually(t, func() bool {
		return first.EventCount() == 3 && second.EventCount() == 3
	}, time.Second, 5*time.Millisecond)

	want := []EventType{MemberAdded, MemberRemoved, ChamberReloaded}
	assert.Equal(t, want, first.Types())
	assert.Equal(t, want, second.Types())
	assert.Equal(t, int64(3), b.EventsPublished())
	assert.Equal(t, int64(0), b.EventsDropped())
}

func TestBroker_Unsubscribe(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go b.Run(ctx)

	sub := newMockSubscriber()
	b.Subscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Unsubscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, sub.Closed())

	b.Publish(ChamberReloaded, nil)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, sub.EventCount())
}

func TestBroker_DropsWhenFull(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	// Not running: the queue fills up.
	for i := 0; i < cap(b.events)+5; i++ {
		b.Publish(ChamberReloaded, i)
	}

	assert.Equal(t, int64(cap(b.events)), b.EventsPublished())
	assert.Equal(t, int64(5), b.EventsDropped())
	assert.Equal(t, cap(b.events), b.QueueDepth())
}

func TestBroker_ShutdownClosesSubscribers(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	sub := newMockSubscriber()
	b.Subscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broker did not stop")
	}
	assert.True(t, sub.Closed())
	assert.Equal(t, 0, b.SubscriberCount())
}
