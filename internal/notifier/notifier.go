package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"go-pos-loyalty/internal/ws"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// channelPattern scopes the feed by store: orders:{store_id}.
const channelPattern = "orders:%s"

// OrderEvent is the typed payload pushed whenever an order changes. Carrying
// the order id and new status lets subscribers fetch one order instead of
// re-reading the whole board.
type OrderEvent struct {
	StoreID     uuid.UUID `json:"store_id"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderNotifier is the seam services publish through; faked in tests.
type OrderNotifier interface {
	OrderChanged(ev OrderEvent)
}

// RedisNotifier publishes order events to a per-store redis channel and
// bridges them back into the local websocket hub, so every API instance sees
// changes committed by its peers.
type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(addr string) *RedisNotifier {
	return &RedisNotifier{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (n *RedisNotifier) OrderChanged(ev OrderEvent) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	channel := fmt.Sprintf(channelPattern, ev.StoreID)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		log.Println("notifier: publish failed:", err)
	}
}

// Bridge subscribes to every store channel and forwards payloads into the
// hub. Blocks until ctx is done; run it in its own goroutine.
func (n *RedisNotifier) Bridge(ctx context.Context, hub *ws.Hub) {
	sub := n.rdb.PSubscribe(ctx, fmt.Sprintf(channelPattern, "*"))
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			storeID := strings.TrimPrefix(msg.Channel, "orders:")
			hub.SendToStore(storeID, []byte(msg.Payload))
		}
	}
}
