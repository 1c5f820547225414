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

package report

import (
	"context"
	"io"
	"os"

	"github.com/penny-vault/pv-fx/fx"
	"github.com/penny-vault/pv-fx/perf"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/rs/zerolog/log"
)

// PerformanceFrame converts a basket into a dataframe with the persisted
// column schema. Row order is preserved; baskets arrive already sorted
// descending by YTD return.
func PerformanceFrame(records []*perf.Record) *dataframe.DataFrame {
	n := len(records)
	tickers := make([]interface{}, 0, n)
	baseDates := make([]interface{}, 0, n)
	currentDates := make([]interface{}, 0, n)
	basePrices := make([]interface{}, 0, n)
	currentPrices := make([]interface{}, 0, n)
	ytdReturns := make([]interface{}, 0, n)
	weeklyReturns := make([]interface{}, 0, n)

	for _, rec := range records {
		tickers = append(tickers, rec.Ticker)
		baseDates = append(baseDates, rec.BaseDate.Format("2006-01-02"))
		currentDates = append(currentDates, rec.CurrentDate.Format("2006-01-02"))
		basePrices = append(basePrices, rec.BasePrice)
		currentPrices = append(currentPrices, rec.CurrentPrice)
		ytdReturns = append(ytdReturns, rec.YTDReturn)
		weeklyReturns = append(weeklyReturns, rec.WeeklyReturn)
	}

	return dataframe.NewDataFrame(
		dataframe.NewSeriesString("ticker", nil, tickers...),
		dataframe.NewSeriesString("base_date", nil, baseDates...),
		dataframe.NewSeriesString("current_date", nil, currentDates...),
		dataframe.NewSeriesFloat64("base_price", nil, basePrices...),
		dataframe.NewSeriesFloat64("current_price", nil, currentPrices...),
		dataframe.NewSeriesFloat64("ytd_return_pct", nil, ytdReturns...),
		dataframe.NewSeriesFloat64("weekly_return_pct", nil, weeklyReturns...),
	)
}

// RegistryFrame converts instruments into the registry-dump schema used by
// downstream reporting to map tickers back to display names
func RegistryFrame(instruments []*fx.Instrument) *dataframe.DataFrame {
	n := len(instruments)
	tickers := make([]interface{}, 0, n)
	names := make([]interface{}, 0, n)
	classes := make([]interface{}, 0, n)
	inverts := make([]interface{}, 0, n)
	regions := make([]interface{}, 0, n)

	for _, inst := range instruments {
		tickers = append(tickers, inst.Ticker)
		names = append(names, inst.Name)
		classes = append(classes, string(inst.Class))
		if inst.Invert {
			inverts = append(inverts, "true")
		} else {
			inverts = append(inverts, "false")
		}
		regions = append(regions, inst.RegionCode)
	}

	return dataframe.NewDataFrame(
		dataframe.NewSeriesString("ticker", nil, tickers...),
		dataframe.NewSeriesString("name", nil, names...),
		dataframe.NewSeriesString("asset_class", nil, classes...),
		dataframe.NewSeriesString("invert", nil, inverts...),
		dataframe.NewSeriesString("region_code", nil, regions...),
	)
}

// WriteCSV serializes a dataframe as UTF-8 delimited text
func WriteCSV(ctx context.Context, w io.Writer, df *dataframe.DataFrame) error {
	return exports.ExportToCSV(ctx, w, df)
}

// WriteCSVFile writes a dataframe to path, replacing any previous run's file
func WriteCSVFile(ctx context.Context, path string, df *dataframe.DataFrame) error {
	fh, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not create csv file")
		return err
	}
	defer fh.Close()

	if err := WriteCSV(ctx, fh, df); err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not write csv file")
		return err
	}
	return nil
}

// LoadCSV reads a previously persisted table back into a dataframe; the
// downstream reporting layer works from these files, not from memory
func LoadCSV(ctx context.Context, r io.ReadSeeker) (*dataframe.DataFrame, error) {
	return imports.LoadFromCSV(ctx, r, imports.CSVLoadOptions{
		InferDataTypes: true,
	})
}
