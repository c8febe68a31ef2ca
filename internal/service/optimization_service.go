package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/cache"
	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/optimize"
	"github.com/shelfmetrics/retail-optimizer/internal/storage"
	"github.com/shelfmetrics/retail-optimizer/pkg/logger"
)

// OptimizationService fronts the reorder engine with a short-lived report
// cache and an optional snapshot archive. The engine itself stays stateless;
// caching and archiving live here.
type OptimizationService struct {
	engine  *optimize.Engine
	reports cache.ReportCache
	archive storage.ObjectStorage
}

func NewOptimizationService(engine *optimize.Engine, reports cache.ReportCache, archive storage.ObjectStorage) *OptimizationService {
	return &OptimizationService{
		engine:  engine,
		reports: reports,
		archive: archive,
	}
}

// OptimizeStore returns the optimization report for a store, serving from
// cache when a fresh report for the same parameters exists. Cache failures
// never fail the request.
func (s *OptimizationService) OptimizeStore(ctx context.Context, storeID, caller uuid.UUID, params domain.OptimizationParameters) (*domain.OptimizationReport, error) {
	if cached, ok, err := s.reports.Get(ctx, storeID, params); err != nil {
		logger.Log.Warn().Err(err).Str("store_id", storeID.String()).Msg("report cache read failed")
	} else if ok {
		return cached, nil
	}

	report, err := s.engine.Optimize(ctx, storeID, caller, params)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Set(ctx, storeID, params, report); err != nil {
		logger.Log.Warn().Err(err).Str("store_id", storeID.String()).Msg("report cache write failed")
	}

	s.archiveSnapshot(ctx, report)

	return report, nil
}

// InvalidateStore drops any cached reports for the store. Called after
// inventory or sales writes so the next report reflects them.
func (s *OptimizationService) InvalidateStore(ctx context.Context, storeID uuid.UUID) {
	if err := s.reports.InvalidateStore(ctx, storeID); err != nil {
		logger.Log.Warn().Err(err).Str("store_id", storeID.String()).Msg("report cache invalidation failed")
	}
}

func (s *OptimizationService) archiveSnapshot(ctx context.Context, report *domain.OptimizationReport) {
	payload, err := json.Marshal(report)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report snapshot encode failed")
		return
	}

	objectName := fmt.Sprintf("reports/%s/%s.json", report.StoreID, time.Now().UTC().Format("20060102T150405Z"))
	if _, err := s.archive.Upload(ctx, objectName, payload, "application/json"); err != nil {
		logger.Log.Warn().Err(err).Str("object", objectName).Msg("report snapshot upload failed")
	}
}
