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
	"os"

	"github.com/penny-vault/pv-fx/fx"
	"github.com/penny-vault/pv-fx/perf"

	"github.com/rs/zerolog/log"
	charts "github.com/vicanso/go-charts/v2"
)

// RenderYTDChart renders the basket as a horizontal bar chart ordered by YTD
// return. Baskets arrive sorted descending; bars are drawn bottom-up so the
// order is flipped to put the best performer on top.
func RenderYTDChart(records []*perf.Record, title string) ([]byte, error) {
	return renderBars(records, title, func(rec *perf.Record) float64 {
		return rec.YTDReturn
	})
}

// RenderWeeklyChart renders the trailing-week view. The weekly ordering is a
// chart-only view; the persisted basket keeps its YTD order.
func RenderWeeklyChart(records []*perf.Record, title string) ([]byte, error) {
	return renderBars(perf.SortedByWeekly(records), title, func(rec *perf.Record) float64 {
		return rec.WeeklyReturn
	})
}

// RenderChartFile writes a rendered chart PNG to path
func RenderChartFile(path string, png []byte) error {
	if err := os.WriteFile(path, png, 0644); err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not write chart file")
		return err
	}
	return nil
}

func renderBars(records []*perf.Record, title string, value func(*perf.Record) float64) ([]byte, error) {
	labels := make([]string, 0, len(records))
	values := make([]float64, 0, len(records))

	// iterate in reverse: records are sorted descending and the category
	// axis draws from the bottom
	for idx := len(records) - 1; idx >= 0; idx-- {
		rec := records[idx]
		labels = append(labels, displayName(rec.Ticker))
		values = append(values, value(rec))
	}

	painter, err := charts.HorizontalBarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.YAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(900),
		charts.HeightOptionFunc(40*len(values)+120),
	)
	if err != nil {
		return nil, err
	}

	return painter.Bytes()
}

func displayName(ticker string) string {
	inst, err := fx.FromTicker(ticker)
	if err != nil {
		return ticker
	}
	return inst.Name
}
