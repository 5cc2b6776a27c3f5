package cache

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

var _ services.MetricsCache = (*MemoryMetricsCache)(nil)

// MemoryMetricsCache is used when the server runs without Redis.
type MemoryMetricsCache struct {
	reports     map[int64]map[string]metrics.Report
	generations map[int64]int64

	mu sync.RWMutex
}

func NewMemoryMetricsCache() *MemoryMetricsCache {
	return &MemoryMetricsCache{
		reports:     make(map[int64]map[string]metrics.Report),
		generations: make(map[int64]int64),
	}
}

func (c *MemoryMetricsCache) GetReport(ctx context.Context, habitID int64, key string) (*metrics.Report, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.reports[habitID][key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &r, nil
}

func (c *MemoryMetricsCache) Generation(ctx context.Context, habitID int64) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[habitID], nil
}

func (c *MemoryMetricsCache) SetReport(ctx context.Context, habitID int64, generation int64, key string, report metrics.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[habitID] != generation {
		return domain.ErrStaleReport
	}

	if c.reports[habitID] == nil {
		c.reports[habitID] = make(map[string]metrics.Report)
	}
	c.reports[habitID][key] = report
	return nil
}

func (c *MemoryMetricsCache) Invalidate(ctx context.Context, habitID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.reports, habitID)
	c.generations[habitID]++
	return nil
}

// Len reports how many reports are cached for a habit.
func (c *MemoryMetricsCache) Len(habitID int64) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reports[habitID])
}
