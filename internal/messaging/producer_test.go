package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandoff(orderNumber string) Handoff {
	return Handoff{
		OrderID:     "11111111-1111-1111-1111-111111111111",
		OrderNumber: orderNumber,
		Street:      "Rua das Flores, 123",
		Total:       decimal.NewFromFloat(48.00),
	}
}

func (p *Producer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func TestProducer_PublishAfterShutdownDoesNotPanic(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "orders.handoff", 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Start(ctx)

	require.Eventually(t, p.isClosed, time.Second, 5*time.Millisecond)

	// The inbox is closed by now; the publish must drop, not panic.
	assert.NotPanics(t, func() {
		p.PublishHandoff(testHandoff("20260901-193045"))
	})
}

func TestProducer_FullInboxDropsInsteadOfBlocking(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "orders.handoff", 1)

	// Not started: nothing drains the inbox. The first publish fills it,
	// the second must return immediately.
	done := make(chan struct{})
	go func() {
		p.PublishHandoff(testHandoff("20260901-193045"))
		p.PublishHandoff(testHandoff("20260901-193046"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full inbox")
	}
	assert.Len(t, p.inbox, 1)
}
