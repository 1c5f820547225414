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

package database

import (
	"context"

	"github.com/penny-vault/pv-fx/fx"
	"github.com/penny-vault/pv-fx/perf"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SavePerformance persists one basket's records for a run. Rows are keyed on
// (ticker, current_date) so re-running the report for the same day replaces
// that day's rows instead of duplicating them.
func SavePerformance(ctx context.Context, runID uuid.UUID, class fx.AssetClass, records []*perf.Record) error {
	subLog := log.With().Str("RunID", runID.String()).Str("AssetClass", string(class)).Int("NumRecords", len(records)).Logger()

	trx, err := pool.Begin(ctx)
	if err != nil {
		subLog.Error().Err(err).Msg("could not begin transaction")
		return err
	}

	sql := `INSERT INTO fx_performance (
		run_id, ticker, asset_class, base_date, current_date,
		base_price, current_price, ytd_return_pct, weekly_return_pct
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	) ON CONFLICT ON CONSTRAINT fx_performance_pkey DO UPDATE SET
		run_id = EXCLUDED.run_id,
		base_date = EXCLUDED.base_date,
		base_price = EXCLUDED.base_price,
		current_price = EXCLUDED.current_price,
		ytd_return_pct = EXCLUDED.ytd_return_pct,
		weekly_return_pct = EXCLUDED.weekly_return_pct`

	for _, rec := range records {
		_, err = trx.Exec(ctx, sql,
			runID, rec.Ticker, string(class), rec.BaseDate, rec.CurrentDate,
			rec.BasePrice, rec.CurrentPrice, rec.YTDReturn, rec.WeeklyReturn)
		if err != nil {
			subLog.Error().Err(err).Str("Ticker", rec.Ticker).Msg("could not insert performance row")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Err(err).Msg("could not rollback transaction")
			}
			return err
		}
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Err(err).Msg("could not commit transaction")
		return err
	}

	subLog.Info().Msg("saved performance records")
	return nil
}
