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

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/penny-vault/pv-fx/common"
	"github.com/penny-vault/pv-fx/data"
	"github.com/penny-vault/pv-fx/database"
	"github.com/penny-vault/pv-fx/fx"
	"github.com/penny-vault/pv-fx/observability/opentelemetry"
	"github.com/penny-vault/pv-fx/perf"
	"github.com/penny-vault/pv-fx/report"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/stat"
)

var reportDate string

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Compute the report as of this date (YYYY-MM-DD); defaults to today")

	rootCmd.AddCommand(reportCmd)
}

// reportRun holds the output of the most recent batch; the serve command
// reads it when answering API requests
type reportRun struct {
	RunID       uuid.UUID
	AsOf        time.Time
	Currencies  []*perf.Record
	Commodities []*perf.Record
}

var (
	latestMu  sync.RWMutex
	latestRun *reportRun
)

func latest() *reportRun {
	latestMu.RLock()
	defer latestMu.RUnlock()
	return latestRun
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the performance report",
	Long:  `Fetch quotes, compute YTD and trailing-week returns for the currency and commodity baskets, and write CSV and chart artifacts`,
	Run: func(cmd *cobra.Command, args []string) {
		if Profile {
			f, err := os.Create("profile.out")
			if err != nil {
				log.Fatal().Err(err).Msg("could not create profile output file")
			}
			pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}

		if Trace {
			f, err := os.Create("trace.out")
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create trace output file")
			}
			defer func() {
				if err := f.Close(); err != nil {
					log.Fatal().Err(err).Msg("failed to close trace file")
				}
			}()

			if err := trace.Start(f); err != nil {
				log.Fatal().Err(err).Msg("failed to start trace")
			}
			defer trace.Stop()
		}

		common.SetupLogging()
		common.SetupCache()

		shutdown, err := opentelemetry.Setup()
		if err != nil {
			log.Error().Err(err).Msg("could not setup opentelemetry")
		}

		ctx := context.Background()
		if shutdown != nil {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down tracing")
				}
			}()
		}

		asOf := time.Now().In(common.GetTimezone())
		if reportDate != "" {
			asOf, err = time.ParseInLocation("2006-01-02", reportDate, common.GetTimezone())
			if err != nil {
				log.Fatal().Err(err).Str("Date", reportDate).Msg("could not parse date")
			}
		}

		if database.Configured() {
			if err := database.Connect(ctx); err != nil {
				log.Fatal().Err(err).Msg("could not connect to database")
			}
		}

		if err := runReport(ctx, asOf); err != nil {
			log.Fatal().Err(err).Msg("report run failed")
		}
	},
}

// runReport executes one full batch: compute both baskets, write the CSV and
// chart artifacts under reports.dir, and persist to the database when one is
// configured
func runReport(ctx context.Context, asOf time.Time) error {
	calc := perf.NewCalculator(data.NewYahoo(), asOf)
	subLog := log.With().Str("RunID", calc.RunID().String()).Time("AsOf", asOf).Logger()
	subLog.Info().Msg("starting report run")

	currencies := calc.CurrencyBasket(ctx)
	commodities := calc.CommodityBasket(ctx)

	logBasketSummary(subLog, "currency", currencies)
	logBasketSummary(subLog, "commodity", commodities)

	outDir := viper.GetString("reports.dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		subLog.Error().Err(err).Str("Dir", outDir).Msg("could not create reports directory")
		return err
	}

	currencyRegistry := make([]*fx.Instrument, 0, len(fx.Currencies())+1)
	currencyRegistry = append(currencyRegistry, fx.Currencies()...)
	currencyRegistry = append(currencyRegistry, fx.DollarIndex())

	frames := map[string]func() error{
		"currency_data.csv": func() error {
			return report.WriteCSVFile(ctx, filepath.Join(outDir, "currency_data.csv"), report.PerformanceFrame(currencies))
		},
		"commodity_data.csv": func() error {
			return report.WriteCSVFile(ctx, filepath.Join(outDir, "commodity_data.csv"), report.PerformanceFrame(commodities))
		},
		"currencies_info.csv": func() error {
			return report.WriteCSVFile(ctx, filepath.Join(outDir, "currencies_info.csv"), report.RegistryFrame(currencyRegistry))
		},
		"commodities_info.csv": func() error {
			return report.WriteCSVFile(ctx, filepath.Join(outDir, "commodities_info.csv"), report.RegistryFrame(fx.Commodities()))
		},
	}

	for name, write := range frames {
		if err := write(); err != nil {
			subLog.Error().Err(err).Str("Artifact", name).Msg("could not write csv artifact")
			return err
		}
	}

	charts := []struct {
		name    string
		records []*perf.Record
		title   string
		render  func([]*perf.Record, string) ([]byte, error)
	}{
		{"currency_ytd.png", currencies, "Moedas - Acumulado do Ano", report.RenderYTDChart},
		{"currency_weekly.png", currencies, "Moedas - Semana", report.RenderWeeklyChart},
		{"commodity_ytd.png", commodities, "Commodities - Acumulado do Ano", report.RenderYTDChart},
		{"commodity_weekly.png", commodities, "Commodities - Semana", report.RenderWeeklyChart},
	}

	for _, chart := range charts {
		png, err := chart.render(chart.records, chart.title)
		if err != nil {
			subLog.Error().Err(err).Str("Artifact", chart.name).Msg("could not render chart")
			return err
		}
		if err := report.RenderChartFile(filepath.Join(outDir, chart.name), png); err != nil {
			return err
		}
	}

	if database.Configured() {
		if err := database.SavePerformance(ctx, calc.RunID(), fx.ClassCurrency, currencies); err != nil {
			return err
		}
		if err := database.SavePerformance(ctx, calc.RunID(), fx.ClassCommodity, commodities); err != nil {
			return err
		}
	}

	latestMu.Lock()
	latestRun = &reportRun{
		RunID:       calc.RunID(),
		AsOf:        asOf,
		Currencies:  currencies,
		Commodities: commodities,
	}
	latestMu.Unlock()

	subLog.Info().Str("Dir", outDir).Msg("report run complete")
	return nil
}

func logBasketSummary(subLog zerolog.Logger, basket string, records []*perf.Record) {
	if len(records) == 0 {
		subLog.Warn().Str("Basket", basket).Msg("basket is empty")
		return
	}

	ytd := make([]float64, 0, len(records))
	weekly := make([]float64, 0, len(records))
	for _, rec := range records {
		ytd = append(ytd, rec.YTDReturn)
		weekly = append(weekly, rec.WeeklyReturn)
	}

	subLog.Info().
		Str("Basket", basket).
		Int("NumRecords", len(records)).
		Float64("MeanYTD", stat.Mean(ytd, nil)).
		Float64("MeanWeekly", stat.Mean(weekly, nil)).
		Str("Best", records[0].Ticker).
		Str("Worst", records[len(records)-1].Ticker).
		Msg("basket summary")
}
