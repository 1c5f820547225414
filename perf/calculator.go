// Copyright 2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package perf

import (
	"context"
	"time"

	"github.com/penny-vault/pv-fx/common"
	"github.com/penny-vault/pv-fx/data"
	"github.com/penny-vault/pv-fx/fx"
	"github.com/penny-vault/pv-fx/observability/opentelemetry"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// margin ahead of the prior-year boundary so at least one trading day
	// lands in the window across year-end holidays
	priorYearMarginDays = 7

	// the trailing "week" window is fetched with extra room because its
	// edges regularly fall on weekends; 10 days matches the empirical
	// margin the report has always used
	trailingWindowDays = 10

	weekLookbackDays = 7
)

// Calculator derives YTD and trailing-week performance records for the
// instrument universe. Instruments are processed one at a time; a failure in
// one instrument's pipeline skips that instrument and never aborts the batch.
type Calculator struct {
	provider data.Provider
	asOf     time.Time
	runID    uuid.UUID
}

func NewCalculator(provider data.Provider, asOf time.Time) *Calculator {
	return &Calculator{
		provider: provider,
		asOf:     asOf,
		runID:    uuid.New(),
	}
}

// RunID identifies this batch run in logs and persisted rows
func (c *Calculator) RunID() uuid.UUID {
	return c.runID
}

// CurrencyBasket computes records for every currency pair plus the dollar
// index, sorted descending by YTD return. Instruments with no usable data are
// omitted; no placeholder rows are emitted for them.
func (c *Calculator) CurrencyBasket(ctx context.Context) []*Record {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "perf.CurrencyBasket")
	defer span.End()
	span.SetAttributes(attribute.String("RunID", c.runID.String()))

	records := make([]*Record, 0, len(fx.Currencies())+1)
	for _, inst := range fx.Currencies() {
		rec, err := c.instrumentRecord(ctx, inst)
		if err != nil {
			log.Warn().Err(err).Str("Ticker", inst.Ticker).Msg("skipping instrument")
			continue
		}
		records = append(records, rec)
	}

	// DXY keeps its historical first/last-of-window semantics; see indexRecord
	if rec, err := c.indexRecord(ctx, fx.DollarIndex()); err != nil {
		log.Warn().Err(err).Str("Ticker", fx.DollarIndex().Ticker).Msg("skipping dollar index")
	} else {
		records = append(records, rec)
	}

	SortByYTD(records)
	return records
}

// CommodityBasket computes records for the commodity universe, sorted
// descending by YTD return
func (c *Calculator) CommodityBasket(ctx context.Context) []*Record {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "perf.CommodityBasket")
	defer span.End()
	span.SetAttributes(attribute.String("RunID", c.runID.String()))

	records := make([]*Record, 0, len(fx.Commodities()))
	for _, inst := range fx.Commodities() {
		rec, err := c.instrumentRecord(ctx, inst)
		if err != nil {
			log.Warn().Err(err).Str("Ticker", inst.Ticker).Msg("skipping instrument")
			continue
		}
		records = append(records, rec)
	}

	SortByYTD(records)
	return records
}

// instrumentRecord runs the per-instrument pipeline: fetch the prior-year,
// YTD, and trailing windows, then compute both returns. The YTD base price is
// the last trading day of the prior calendar year; the weekly base snaps to
// the trading day nearest seven days before the last observation.
func (c *Calculator) instrumentRecord(ctx context.Context, inst *fx.Instrument) (*Record, error) {
	subLog := log.With().Str("Ticker", inst.Ticker).Str("AssetClass", string(inst.Class)).Logger()
	tz := common.GetTimezone()

	priorYearEnd := time.Date(c.asOf.Year()-1, 12, 31, 0, 0, 0, 0, tz)
	priorSeries, err := c.provider.FetchEOD(ctx, inst.Ticker, priorYearEnd.AddDate(0, 0, -priorYearMarginDays), priorYearEnd)
	if err != nil {
		return nil, err
	}
	if priorSeries.Empty() {
		subLog.Warn().Msg("no prior-year data for instrument")
		return nil, data.ErrEmptySeries
	}

	yearStart := time.Date(c.asOf.Year(), 1, 1, 0, 0, 0, 0, tz)
	ytdSeries, err := c.provider.FetchEOD(ctx, inst.Ticker, yearStart, c.asOf)
	if err != nil {
		return nil, err
	}
	if ytdSeries.Empty() {
		subLog.Warn().Msg("no year-to-date data for instrument")
		return nil, data.ErrEmptySeries
	}

	trailingSeries, err := c.provider.FetchEOD(ctx, inst.Ticker, c.asOf.AddDate(0, 0, -trailingWindowDays), c.asOf)
	if err != nil {
		return nil, err
	}

	base := priorSeries.Last()
	current := ytdSeries.Last()

	ytdReturn, err := Return(base.Close, current.Close, inst)
	if err != nil {
		subLog.Warn().Err(err).Float64("BasePrice", base.Close).Msg("cannot compute YTD return")
		return nil, err
	}

	// weekly degradation is non-fatal; the record still reports YTD
	var weeklyReturn float64
	if len(trailingSeries) >= 2 {
		weekCurrent := trailingSeries.Last()
		weekBase, _ := NearestDate(trailingSeries, weekCurrent.Date.AddDate(0, 0, -weekLookbackDays))
		weeklyReturn, err = Return(weekBase.Close, weekCurrent.Close, inst)
		if err != nil {
			subLog.Warn().Err(err).Msg("cannot compute weekly return; defaulting to 0")
			weeklyReturn = 0
		}
	} else {
		subLog.Warn().Int("TrailingObservations", len(trailingSeries)).Msg("insufficient weekly data; defaulting weekly return to 0")
	}

	return &Record{
		Ticker:       inst.Ticker,
		BaseDate:     base.Date,
		CurrentDate:  current.Date,
		BasePrice:    base.Close,
		CurrentPrice: current.Close,
		YTDReturn:    ytdReturn,
		WeeklyReturn: weeklyReturn,
	}, nil
}

// indexRecord computes the dollar index with window-endpoint semantics: the
// YTD base is the first available day of the current year, not the prior
// year's last trading day, and the weekly return compares the endpoints of a
// plain 7-day window with no nearest-date snapping. This disagrees with the
// per-currency definition of a YTD base; it is preserved as-is rather than
// silently unified.
func (c *Calculator) indexRecord(ctx context.Context, inst *fx.Instrument) (*Record, error) {
	subLog := log.With().Str("Ticker", inst.Ticker).Logger()
	tz := common.GetTimezone()

	yearStart := time.Date(c.asOf.Year(), 1, 1, 0, 0, 0, 0, tz)
	ytdSeries, err := c.provider.FetchEOD(ctx, inst.Ticker, yearStart, c.asOf)
	if err != nil {
		return nil, err
	}
	if ytdSeries.Empty() {
		subLog.Warn().Msg("no year-to-date data for index")
		return nil, data.ErrEmptySeries
	}

	weekSeries, err := c.provider.FetchEOD(ctx, inst.Ticker, c.asOf.AddDate(0, 0, -weekLookbackDays), c.asOf)
	if err != nil {
		return nil, err
	}

	base := ytdSeries.First()
	current := ytdSeries.Last()

	ytdReturn, err := Return(base.Close, current.Close, inst)
	if err != nil {
		subLog.Warn().Err(err).Float64("BasePrice", base.Close).Msg("cannot compute YTD return")
		return nil, err
	}

	var weeklyReturn float64
	if !weekSeries.Empty() {
		weeklyReturn, err = Return(weekSeries.First().Close, weekSeries.Last().Close, inst)
		if err != nil {
			subLog.Warn().Err(err).Msg("cannot compute weekly return; defaulting to 0")
			weeklyReturn = 0
		}
	} else {
		subLog.Warn().Msg("no trailing-week data for index; defaulting weekly return to 0")
	}

	return &Record{
		Ticker:       inst.Ticker,
		BaseDate:     base.Date,
		CurrentDate:  current.Date,
		BasePrice:    base.Close,
		CurrentPrice: current.Close,
		YTDReturn:    ytdReturn,
		WeeklyReturn: weeklyReturn,
	}, nil
}
