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

package perf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-fx/perf"
)

var _ = Describe("Record ordering", func() {
	var records []*perf.Record

	BeforeEach(func() {
		records = []*perf.Record{
			{Ticker: "AAA", YTDReturn: 2.0, WeeklyReturn: -1.0},
			{Ticker: "BBB", YTDReturn: 5.0, WeeklyReturn: 0.5},
			{Ticker: "CCC", YTDReturn: 2.0, WeeklyReturn: 3.0},
			{Ticker: "DDD", YTDReturn: -4.0, WeeklyReturn: 1.0},
		}
	})

	Context("sorting by YTD return", func() {
		It("orders descending and keeps ties in original order", func() {
			perf.SortByYTD(records)

			tickers := make([]string, 0, len(records))
			for _, rec := range records {
				tickers = append(tickers, rec.Ticker)
			}
			Expect(tickers).To(Equal([]string{"BBB", "AAA", "CCC", "DDD"}))
		})
	})

	Context("viewing by weekly return", func() {
		It("orders the view descending without touching the original", func() {
			perf.SortByYTD(records)
			view := perf.SortedByWeekly(records)

			viewTickers := make([]string, 0, len(view))
			for _, rec := range view {
				viewTickers = append(viewTickers, rec.Ticker)
			}
			Expect(viewTickers).To(Equal([]string{"CCC", "DDD", "BBB", "AAA"}))

			// original basket keeps its YTD order
			Expect(records[0].Ticker).To(Equal("BBB"))
			Expect(records[3].Ticker).To(Equal("DDD"))
		})
	})
})
