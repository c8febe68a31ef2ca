package forecast

import (
	"time"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
)

const rollingWindowDays = 7

// FeatureVector is the model input for one predicted day.
type FeatureVector struct {
	Day         time.Time `json:"day"`
	Lag1        float64   `json:"lag_1"`
	Lag7        float64   `json:"lag_7"`
	Rolling7    float64   `json:"rolling_7"`
	DayOfWeek   int       `json:"day_of_week"`
	IsWeekend   bool      `json:"is_weekend"`
	IsHoliday   bool      `json:"is_holiday"`
	OnPromotion bool      `json:"on_promotion"`
}

// DailySeries is a contiguous per-day quantity series. Days with no sales
// carry an explicit zero so lag features line up.
type DailySeries struct {
	Start  time.Time
	Values []float64
}

// BuildDailySeries turns raw sale events into a contiguous daily series from
// the earliest observation through end (inclusive). An empty history yields an
// empty series.
func BuildDailySeries(observations []domain.SalesObservation, end time.Time) DailySeries {
	if len(observations) == 0 {
		return DailySeries{}
	}

	totals := make(map[time.Time]float64)
	var start time.Time
	for _, obs := range observations {
		day := truncateDay(obs.OccurredAt)
		totals[day] += float64(obs.Quantity)
		if start.IsZero() || day.Before(start) {
			start = day
		}
	}

	end = truncateDay(end)
	if end.Before(start) {
		end = start
	}

	days := int(end.Sub(start).Hours()/24) + 1
	values := make([]float64, days)
	for day, qty := range totals {
		idx := int(day.Sub(start).Hours() / 24)
		if idx >= 0 && idx < days {
			values[idx] = qty
		}
	}

	return DailySeries{Start: start, Values: values}
}

// Features computes the model inputs for the day immediately following the
// series. Lags beyond the available history fall back to zero.
func (s DailySeries) Features(day time.Time, isHoliday, onPromotion bool) FeatureVector {
	n := len(s.Values)
	fv := FeatureVector{
		Day:         truncateDay(day),
		DayOfWeek:   int(day.Weekday()),
		IsWeekend:   day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
		IsHoliday:   isHoliday,
		OnPromotion: onPromotion,
	}

	if n >= 1 {
		fv.Lag1 = s.Values[n-1]
	}
	if n >= rollingWindowDays {
		fv.Lag7 = s.Values[n-rollingWindowDays]
	}

	window := rollingWindowDays
	if n < window {
		window = n
	}
	if window > 0 {
		var sum float64
		for _, v := range s.Values[n-window:] {
			sum += v
		}
		fv.Rolling7 = sum / float64(window)
	}

	return fv
}

// Extend appends a predicted value so the next day's lags see it.
func (s *DailySeries) Extend(value float64) {
	if value < 0 {
		value = 0
	}
	s.Values = append(s.Values, value)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
