package application_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/heirvault/heirvault-daemon/internal/core/ports"
)

// mockAssetMover records every transfer and can be programmed to fail.
type mockAssetMover struct {
	mtx       sync.Mutex
	transfers []mockTransfer
	failWith  error
}

type mockTransfer struct {
	asset   string
	account string
	amount  uint64
	in      bool
}

func (m *mockAssetMover) TransferIn(
	_ context.Context, asset, from string, amount uint64,
) error {
	return m.record(mockTransfer{asset: asset, account: from, amount: amount, in: true})
}

func (m *mockAssetMover) TransferOut(
	_ context.Context, asset, to string, amount uint64,
) error {
	return m.record(mockTransfer{asset: asset, account: to, amount: amount})
}

func (m *mockAssetMover) record(tr mockTransfer) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.transfers = append(m.transfers, tr)
	return nil
}

func (m *mockAssetMover) failNext(err error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.failWith = err
}

func (m *mockAssetMover) list() []mockTransfer {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	out := make([]mockTransfer, len(m.transfers))
	copy(out, m.transfers)
	return out
}

// mockPubSub collects published messages per topic.
type mockPubSub struct {
	mtx    sync.Mutex
	events map[string][]string
}

func newMockPubSub() *mockPubSub {
	return &mockPubSub{events: map[string][]string{}}
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	return "", fmt.Errorf("not supported")
}

func (m *mockPubSub) Unsubscribe(topic, id string) error {
	return fmt.Errorf("not supported")
}

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return nil
}

func (m *mockPubSub) Publish(topic string, message string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.events[topic] = append(m.events[topic], message)
	return nil
}

func (m *mockPubSub) Close() error { return nil }

func (m *mockPubSub) published(topic string) []string {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.events[topic]
}
