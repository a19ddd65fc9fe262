package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/salesday/pkg/domain/model"
)

// OrderRepository loads order data from the sales store
type OrderRepository interface {
	// DailyOrderCounts returns one entry per day with at least one order, oldest first
	DailyOrderCounts(ctx context.Context) ([]model.OrderDayCount, error)

	// Close releases the underlying connection
	Close() error
}

// OrderSeeder writes synthetic orders into the sales store
type OrderSeeder interface {
	// EnsureSchema creates the orders table when it does not exist
	EnsureSchema(ctx context.Context) error

	// InsertOrders stores one order per timestamp
	InsertOrders(ctx context.Context, placedAt []time.Time) error
}
