package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/inovacc/nutrilog/internal/config"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
)

func validateDays(days int) error {
	if days < 1 || days > config.MaxHistoryDays {
		return invalid("days", fmt.Sprintf("must be between 1 and %d", config.MaxHistoryDays))
	}

	return nil
}

// historyRange returns the first and last date of the days ending at now.
func (s *Service) historyRange(now time.Time, days int) (from, to string) {
	local := now.In(s.location)
	to = nutrition.DateOf(local, s.location)
	from = nutrition.FormatDate(time.Date(local.Year(), local.Month(), local.Day()-(days-1), 0, 0, 0, 0, s.location))

	return from, to
}

// History summarizes the last days calendar days up to now, newest first.
// Totals are computed locally from the meals; days without meals are zero.
func (s *Service) History(ctx context.Context, now time.Time, days int) ([]DaySummary, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}

	from, to := s.historyRange(now, days)

	if err := s.ensureFoods(ctx); err != nil {
		return nil, err
	}

	meals, err := s.mealsForDates(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]model.MealEntry)
	for _, m := range meals {
		date := nutrition.DateOf(m.ConsumedAt, s.location)
		byDate[date] = append(byDate[date], m)
	}

	totals, err := nutrition.AggregateDays(meals, from, to, s.location)
	if err != nil {
		return nil, err
	}

	settings := s.state.Settings()
	out := make([]DaySummary, 0, len(totals))

	for _, day := range totals {
		out = append(out, summarizeTotals(day.Date, byDate[day.Date], day.Totals, settings))
	}

	slices.Reverse(out)

	return out, nil
}

// RemoteHistory returns the server's per-day dashboard for the same range,
// newest first. Meals are not included.
func (s *Service) RemoteHistory(ctx context.Context, now time.Time, days int) ([]DaySummary, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}

	from, to := s.historyRange(now, days)

	remoteDays, err := s.api.DashboardRange(ctx, from, to)
	if err != nil {
		return nil, remote("load history", err)
	}

	current := s.state.Settings()
	out := make([]DaySummary, 0, len(remoteDays))

	for _, d := range remoteDays {
		settings := current
		if d.MetabolismBase > 0 {
			settings.BasalMetabolism = d.MetabolismBase
		}

		totals := d.Totals()
		out = append(out, DaySummary{
			Date:       d.DateOnly(),
			Totals:     totals,
			Settings:   settings,
			Evaluation: nutrition.Evaluate(totals, settings),
		})
	}

	slices.SortStableFunc(out, func(a, b DaySummary) int {
		return strings.Compare(b.Date, a.Date)
	})

	return out, nil
}
