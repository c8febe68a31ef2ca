package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shelfmetrics/retail-optimizer/internal/config"
	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

const (
	reportKeyPrefix     = "optimization:report"
	reportScanBatchSize = 100
)

// ReportCache stores computed optimization reports keyed by store and
// parameters. Reports are snapshots, not authoritative state; the TTL keeps
// them short-lived.
type ReportCache interface {
	Get(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters) (*domain.OptimizationReport, bool, error)
	Set(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters, report *domain.OptimizationReport) error
	InvalidateStore(ctx context.Context, storeID uuid.UUID) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) Get(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters) (*domain.OptimizationReport, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(storeID, params)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.OptimizationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode optimization report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters, report *domain.OptimizationReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode optimization report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReportKey(storeID, params), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) error {
	prefix := fmt.Sprintf("%s:%s:", reportKeyPrefix, storeID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, reportScanBatchSize)
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, reportScanBatchSize)
}

func (n *noopReportCache) Get(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters) (*domain.OptimizationReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) Set(ctx context.Context, storeID uuid.UUID, params domain.OptimizationParameters, report *domain.OptimizationReport) error {
	return nil
}

func (n *noopReportCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(storeID uuid.UUID, params domain.OptimizationParameters) string {
	return fmt.Sprintf("%s:%s:lead=%d:level=%.3f", reportKeyPrefix, storeID, params.LeadTimeDays, params.ServiceLevel)
}
