package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

const (
	reportTTL = 24 * time.Hour
	// outlives the reports it guards
	generationTTL = 2 * reportTTL
)

var _ services.MetricsCache = (*RedisMetricsCache)(nil)

func NewRedisClient(host, port, password string, dbIndex int) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// RedisMetricsCache keeps the reports of a habit in one hash, so a single DEL
// drops every period and mode at once.
type RedisMetricsCache struct {
	rdb *redis.Client
}

func NewRedisMetricsCache(rdb *redis.Client) *RedisMetricsCache {
	return &RedisMetricsCache{rdb: rdb}
}

func reportsKey(habitID int64) string {
	return fmt.Sprintf("metrics:%d", habitID)
}

func generationKey(habitID int64) string {
	return fmt.Sprintf("metrics:%d:gen", habitID)
}

func (c *RedisMetricsCache) GetReport(ctx context.Context, habitID int64, key string) (*metrics.Report, error) {
	val, err := c.rdb.HGet(ctx, reportsKey(habitID), key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var report metrics.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		log.Printf("[CACHE] Corrupted report %s for habit %d, cleaning up field", key, habitID)
		c.rdb.HDel(ctx, reportsKey(habitID), key)
		return nil, domain.ErrCacheMiss
	}
	return &report, nil
}

// Generation returns 0 for a habit that was never invalidated or whose counter expired.
func (c *RedisMetricsCache) Generation(ctx context.Context, habitID int64) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(habitID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetReport watches the generation counter, so an Invalidate landing between the
// check and the write aborts the transaction.
func (c *RedisMetricsCache) SetReport(ctx context.Context, habitID int64, generation int64, key string, report metrics.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	genKey := generationKey(habitID)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != generation {
			return domain.ErrStaleReport
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, reportsKey(habitID), key, data)
			pipe.Expire(ctx, reportsKey(habitID), reportTTL)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return domain.ErrStaleReport
	}
	return err
}

func (c *RedisMetricsCache) Invalidate(ctx context.Context, habitID int64) error {
	genKey := generationKey(habitID)

	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, generationTTL)
	pipe.Del(ctx, reportsKey(habitID))
	_, err := pipe.Exec(ctx)
	return err
}
