package messaging

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher is the seam order commit publishes hand-offs through; faked in
// tests and nil-able when no broker is configured.
type Publisher interface {
	PublishHandoff(h Handoff)
}

// Producer writes hand-off payloads to the orders.handoff topic. Messages go
// through a buffered inbox so a slow broker never blocks an order commit.
type Producer struct {
	w     *kafka.Writer
	inbox chan kafka.Message

	mu     sync.Mutex
	closed bool
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox: make(chan kafka.Message, buf),
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				// Stop intake first, then close and flush what is queued.
				// Publishers racing the shutdown drop their message instead
				// of hitting a closed channel.
				p.mu.Lock()
				p.closed = true
				close(p.inbox)
				p.mu.Unlock()
				for m := range p.inbox {
					if err := p.w.WriteMessages(context.Background(), m); err != nil {
						log.Println("messaging: flush failed:", err)
					}
				}
				_ = p.w.Close()
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					return
				}
				if err := p.w.WriteMessages(context.Background(), m); err != nil {
					log.Println("messaging: write failed:", err)
				}
			}
		}
	}()
}

func (p *Producer) PublishHandoff(h Handoff) {
	value, err := json.Marshal(h)
	if err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		log.Println("messaging: hand-off dropped, producer is shut down:", h.OrderNumber)
		return
	}
	// Key by order id so retries for one order stay in partition order.
	// Non-blocking: a backed-up inbox drops the hand-off rather than stall
	// an order commit or deadlock the shutdown flush.
	select {
	case p.inbox <- kafka.Message{
		Key:   []byte(h.OrderID),
		Value: value,
		Time:  time.Now(),
	}:
	default:
		log.Println("messaging: hand-off dropped, inbox full:", h.OrderNumber)
	}
}
