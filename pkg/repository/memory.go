package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/domain/model"
)

// Memory implements OrderRepository with in-memory storage
type Memory struct {
	mu     sync.RWMutex
	orders []time.Time
}

var (
	_ interfaces.OrderRepository = (*Memory)(nil)
	_ interfaces.OrderSeeder     = (*Memory)(nil)
)

// NewMemory creates a new memory repository holding the given orders
func NewMemory(placedAt ...time.Time) *Memory {
	return &Memory{
		orders: append([]time.Time(nil), placedAt...),
	}
}

// DailyOrderCounts counts stored orders per UTC calendar day, oldest first
func (m *Memory) DailyOrderCounts(ctx context.Context) ([]model.OrderDayCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[model.Date]int64)
	for _, t := range m.orders {
		counts[model.DateOf(t.UTC())]++
	}

	result := make([]model.OrderDayCount, 0, len(counts))
	for date, count := range counts {
		result = append(result, model.OrderDayCount{Date: date, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// EnsureSchema is a no-op for memory storage
func (m *Memory) EnsureSchema(ctx context.Context) error {
	return nil
}

// InsertOrders appends orders to memory
func (m *Memory) InsertOrders(ctx context.Context, placedAt []time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders = append(m.orders, placedAt...)
	return nil
}

// Close is a no-op for memory storage
func (m *Memory) Close() error {
	return nil
}
