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
	"time"

	"github.com/penny-vault/pv-fx/data"
)

// NearestDate returns the series entry whose date minimizes the absolute
// day-distance to target. Daily close series only cover trading days, so a
// "price N days ago" lookup has to snap to the closest available session
// rather than fail on weekends and holidays. Ties go to the earliest date.
func NearestDate(series data.PriceSeries, target time.Time) (data.Price, error) {
	if series.Empty() {
		return data.Price{}, data.ErrEmptySeries
	}

	best := series.First()
	bestDist := absDayDistance(best.Date, target)
	for _, px := range series[1:] {
		// strict less-than keeps the earliest entry on equidistant dates
		if dist := absDayDistance(px.Date, target); dist < bestDist {
			best = px
			bestDist = dist
		}
	}

	return best, nil
}

// absDayDistance measures whole calendar days between two dates; both are
// normalized to UTC midnight first so DST transitions don't produce
// fractional days
func absDayDistance(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	days := int(au.Sub(bu) / (24 * time.Hour))
	if days < 0 {
		days = -days
	}
	return days
}
