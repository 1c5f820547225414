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
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-fx/data"
	"github.com/penny-vault/pv-fx/perf"
)

// stubProvider serves canned series keyed by ticker and window start; windows
// the stub has no entry for yield an empty series like a real provider with no
// trading data in range
type stubProvider struct {
	series map[string]data.PriceSeries
	errs   map[string]error
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		series: make(map[string]data.PriceSeries),
		errs:   make(map[string]error),
	}
}

func windowKey(ticker string, begin time.Time) string {
	return fmt.Sprintf("%s|%s", ticker, begin.Format("2006-01-02"))
}

func (p *stubProvider) add(ticker string, begin time.Time, series data.PriceSeries) {
	p.series[windowKey(ticker, begin)] = series
}

func (p *stubProvider) fail(ticker string, begin time.Time, err error) {
	p.errs[windowKey(ticker, begin)] = err
}

func (p *stubProvider) FetchEOD(_ context.Context, ticker string, begin time.Time, _ time.Time) (data.PriceSeries, error) {
	key := windowKey(ticker, begin)
	if err, ok := p.errs[key]; ok {
		return nil, err
	}
	return p.series[key], nil
}

var _ = Describe("Calculator", func() {
	var (
		provider *stubProvider
		calc     *perf.Calculator
		asOf     time.Time

		priorBegin    time.Time
		ytdBegin      time.Time
		trailingBegin time.Time
		weekBegin     time.Time
	)

	BeforeEach(func() {
		provider = newStubProvider()
		asOf = day(2025, 8, 20)
		calc = perf.NewCalculator(provider, asOf)

		priorBegin = day(2024, 12, 24)
		ytdBegin = day(2025, 1, 1)
		trailingBegin = day(2025, 8, 10)
		weekBegin = day(2025, 8, 13)
	})

	Context("computing the currency basket", func() {
		BeforeEach(func() {
			// EUR/USD, quoted foreign-per-USD so no inversion
			provider.add("EURUSD=X", priorBegin, data.PriceSeries{
				{Date: day(2024, 12, 27), Close: 1.02},
				{Date: day(2024, 12, 30), Close: 1.04},
			})
			provider.add("EURUSD=X", ytdBegin, data.PriceSeries{
				{Date: day(2025, 1, 2), Close: 1.05},
				{Date: day(2025, 8, 19), Close: 1.10},
			})
			provider.add("EURUSD=X", trailingBegin, data.PriceSeries{
				{Date: day(2025, 8, 11), Close: 1.095},
				{Date: day(2025, 8, 13), Close: 1.096},
				{Date: day(2025, 8, 19), Close: 1.10},
			})

			// USD/BRL, inverted sign
			provider.add("USDBRL=X", priorBegin, data.PriceSeries{
				{Date: day(2024, 12, 30), Close: 6.18},
			})
			provider.add("USDBRL=X", ytdBegin, data.PriceSeries{
				{Date: day(2025, 8, 19), Close: 5.56},
			})
			provider.add("USDBRL=X", trailingBegin, data.PriceSeries{
				{Date: day(2025, 8, 19), Close: 5.56},
			})

			// dollar index uses window endpoints, not the prior-year base
			provider.add("DX-Y.NYB", ytdBegin, data.PriceSeries{
				{Date: day(2025, 1, 2), Close: 108.0},
				{Date: day(2025, 8, 19), Close: 98.0},
			})
			provider.add("DX-Y.NYB", weekBegin, data.PriceSeries{
				{Date: day(2025, 8, 13), Close: 99.0},
				{Date: day(2025, 8, 19), Close: 98.0},
			})
		})

		It("skips instruments with no data and sorts the rest by YTD return", func() {
			records := calc.CurrencyBasket(context.Background())
			Expect(records).To(HaveLen(3))

			Expect(records[0].Ticker).To(Equal("USDBRL=X"))
			Expect(records[1].Ticker).To(Equal("EURUSD=X"))
			Expect(records[2].Ticker).To(Equal("DX-Y.NYB"))
		})

		It("computes the YTD return from the prior-year close", func() {
			records := calc.CurrencyBasket(context.Background())

			var euro *perf.Record
			for _, rec := range records {
				if rec.Ticker == "EURUSD=X" {
					euro = rec
				}
			}
			Expect(euro).ToNot(BeNil())

			Expect(euro.BaseDate).To(Equal(day(2024, 12, 30)))
			Expect(euro.CurrentDate).To(Equal(day(2025, 8, 19)))
			Expect(euro.BasePrice).To(Equal(1.04))
			Expect(euro.CurrentPrice).To(Equal(1.10))
			Expect(euro.YTDReturn).To(BeNumerically("~", (1.10-1.04)/1.04*100, 1e-9))
		})

		It("negates the YTD return for USD-per-foreign quotes", func() {
			records := calc.CurrencyBasket(context.Background())

			var real *perf.Record
			for _, rec := range records {
				if rec.Ticker == "USDBRL=X" {
					real = rec
				}
			}
			Expect(real).ToNot(BeNil())
			Expect(real.YTDReturn).To(BeNumerically("~", -(5.56-6.18)/6.18*100, 1e-9))
		})

		It("snaps the weekly base to the nearest trading day", func() {
			records := calc.CurrencyBasket(context.Background())

			var euro *perf.Record
			for _, rec := range records {
				if rec.Ticker == "EURUSD=X" {
					euro = rec
				}
			}
			Expect(euro).ToNot(BeNil())

			// last observation is Aug 19; seven days back is Aug 12 and the
			// equidistant Aug 11 / Aug 13 tie resolves to Aug 11
			Expect(euro.WeeklyReturn).To(BeNumerically("~", (1.10-1.095)/1.095*100, 1e-9))
		})

		It("defaults the weekly return to zero when the trailing window is too thin", func() {
			records := calc.CurrencyBasket(context.Background())

			var real *perf.Record
			for _, rec := range records {
				if rec.Ticker == "USDBRL=X" {
					real = rec
				}
			}
			Expect(real).ToNot(BeNil())
			Expect(real.WeeklyReturn).To(Equal(0.0))
		})

		It("computes the dollar index from the window endpoints", func() {
			records := calc.CurrencyBasket(context.Background())

			var dxy *perf.Record
			for _, rec := range records {
				if rec.Ticker == "DX-Y.NYB" {
					dxy = rec
				}
			}
			Expect(dxy).ToNot(BeNil())

			Expect(dxy.BaseDate).To(Equal(day(2025, 1, 2)))
			Expect(dxy.BasePrice).To(Equal(108.0))
			Expect(dxy.YTDReturn).To(BeNumerically("~", (98.0-108.0)/108.0*100, 1e-9))
			Expect(dxy.WeeklyReturn).To(BeNumerically("~", (98.0-99.0)/99.0*100, 1e-9))
		})
	})

	Context("when a provider fetch fails", func() {
		It("skips the failing instrument and keeps the rest", func() {
			provider.fail("EURUSD=X", priorBegin, fmt.Errorf("transport down"))

			provider.add("DX-Y.NYB", ytdBegin, data.PriceSeries{
				{Date: day(2025, 1, 2), Close: 108.0},
				{Date: day(2025, 8, 19), Close: 98.0},
			})

			records := calc.CurrencyBasket(context.Background())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Ticker).To(Equal("DX-Y.NYB"))
		})
	})

	Context("computing the commodity basket", func() {
		It("computes returns without inversion", func() {
			provider.add("CL=F", priorBegin, data.PriceSeries{
				{Date: day(2024, 12, 30), Close: 70.0},
			})
			provider.add("CL=F", ytdBegin, data.PriceSeries{
				{Date: day(2025, 8, 19), Close: 77.0},
			})
			provider.add("CL=F", trailingBegin, data.PriceSeries{
				{Date: day(2025, 8, 12), Close: 76.0},
				{Date: day(2025, 8, 19), Close: 77.0},
			})

			records := calc.CommodityBasket(context.Background())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Ticker).To(Equal("CL=F"))
			Expect(records[0].YTDReturn).To(BeNumerically("~", 10.0, 1e-9))
			Expect(records[0].WeeklyReturn).To(BeNumerically("~", (77.0-76.0)/76.0*100, 1e-9))
		})
	})
})
