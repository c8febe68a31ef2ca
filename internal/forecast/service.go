package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
	"github.com/shelfmetrics/retail-optimizer/pkg/logger"
)

const (
	defaultHistoryDays = 90
	maxHorizonDays     = 90
)

// Service generates and persists per-product demand forecasts by rolling the
// model forward one day at a time, feeding each prediction back as history.
type Service struct {
	stores     repository.StoreRepository
	sales      repository.SalesRepository
	holidays   repository.HolidayRepository
	promotions repository.PromotionRepository
	forecasts  repository.ForecastRepository
	forecaster Forecaster
}

func NewService(
	stores repository.StoreRepository,
	sales repository.SalesRepository,
	holidays repository.HolidayRepository,
	promotions repository.PromotionRepository,
	forecasts repository.ForecastRepository,
	forecaster Forecaster,
) *Service {
	return &Service{
		stores:     stores,
		sales:      sales,
		holidays:   holidays,
		promotions: promotions,
		forecasts:  forecasts,
		forecaster: forecaster,
	}
}

// ForecastProduct predicts daily demand for the next horizonDays and stores
// the result. Horizons outside [1, 90] are clamped. The caller must own the
// store.
func (s *Service) ForecastProduct(ctx context.Context, productID, storeID, caller uuid.UUID, horizonDays int) ([]domain.Forecast, error) {
	if horizonDays <= 0 {
		horizonDays = rollingWindowDays
	}
	if horizonDays > maxHorizonDays {
		horizonDays = maxHorizonDays
	}

	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != caller {
		return nil, fmt.Errorf("store %s: %w", storeID, domain.ErrForbidden)
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -defaultHistoryDays)
	observations, err := s.sales.ListByProductStore(ctx, productID, storeID, since)
	if err != nil {
		return nil, fmt.Errorf("error loading sales history: %w", err)
	}

	series := BuildDailySeries(observations, now.AddDate(0, 0, -1))

	firstDay := truncateDay(now)
	lastDay := firstDay.AddDate(0, 0, horizonDays-1)

	holidayDays, err := s.holidayDays(ctx, store.Market, firstDay, lastDay)
	if err != nil {
		logger.Log.Warn().Err(err).Str("market", store.Market).Msg("holiday lookup failed, forecasting without holiday signal")
		holidayDays = map[time.Time]bool{}
	}

	promotions, err := s.promotions.ListByStore(ctx, storeID, 0, 0)
	if err != nil {
		logger.Log.Warn().Err(err).Str("store_id", storeID.String()).Msg("promotion lookup failed, forecasting without promotion signal")
		promotions = nil
	}

	forecasts := make([]domain.Forecast, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		day := firstDay.AddDate(0, 0, i)
		fv := series.Features(day, holidayDays[day], promotionActive(promotions, productID, day))

		predictions, err := s.forecaster.Predict(ctx, []FeatureVector{fv})
		if err != nil {
			return nil, fmt.Errorf("error predicting demand: %w", err)
		}

		predicted := predictions[0]
		if predicted < 0 || math.IsNaN(predicted) {
			predicted = 0
		}
		series.Extend(predicted)

		forecasts = append(forecasts, domain.Forecast{
			ProductID:         productID,
			StoreID:           storeID,
			Day:               day,
			PredictedQuantity: int(math.Round(predicted)),
		})
	}

	if err := s.forecasts.SaveBatch(ctx, forecasts); err != nil {
		return nil, err
	}

	return forecasts, nil
}

// ListForecasts returns the stored forecasts for a product from today onward.
func (s *Service) ListForecasts(ctx context.Context, productID, storeID uuid.UUID) ([]domain.Forecast, error) {
	return s.forecasts.ListByProductStore(ctx, productID, storeID, truncateDay(time.Now().UTC()))
}

func (s *Service) holidayDays(ctx context.Context, market string, from, to time.Time) (map[time.Time]bool, error) {
	holidays, err := s.holidays.ListByDateRange(ctx, market, from, to)
	if err != nil {
		return nil, err
	}

	days := make(map[time.Time]bool, len(holidays))
	for _, h := range holidays {
		days[truncateDay(h.Date)] = true
	}
	return days, nil
}

func promotionActive(promotions []domain.Promotion, productID uuid.UUID, day time.Time) bool {
	for _, promo := range promotions {
		if !promo.ActiveOn(day) {
			continue
		}
		if len(promo.ProductIDs) == 0 {
			return true
		}
		for _, id := range promo.ProductIDs {
			if id == productID {
				return true
			}
		}
	}
	return false
}
