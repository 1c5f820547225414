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
	"sort"
	"time"
)

// Record is one instrument's computed performance for a run; it is not
// mutated after the aggregator emits it
type Record struct {
	Ticker       string    `json:"ticker"`
	BaseDate     time.Time `json:"baseDate"`
	CurrentDate  time.Time `json:"currentDate"`
	BasePrice    float64   `json:"basePrice"`
	CurrentPrice float64   `json:"currentPrice"`
	YTDReturn    float64   `json:"ytdReturnPct"`
	WeeklyReturn float64   `json:"weeklyReturnPct"`
}

// SortByYTD orders records descending by YTD return, in place. The sort is
// stable so equal returns keep registry discovery order.
func SortByYTD(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].YTDReturn > records[j].YTDReturn
	})
}

// SortedByWeekly returns a copy ordered descending by weekly return. The
// stored basket keeps its YTD ordering; this view exists for charting only.
func SortedByWeekly(records []*Record) []*Record {
	view := make([]*Record, len(records))
	copy(view, records)
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].WeeklyReturn > view[j].WeeklyReturn
	})
	return view
}
