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
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-fx/common"
	"github.com/penny-vault/pv-fx/data"
	"github.com/penny-vault/pv-fx/perf"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, common.GetTimezone())
}

var _ = Describe("Nearest date lookup", func() {
	Context("with a sparse trading-day series", func() {
		var series data.PriceSeries

		BeforeEach(func() {
			series = data.PriceSeries{
				{Date: day(2025, 1, 1), Close: 1.01},
				{Date: day(2025, 1, 4), Close: 1.04},
				{Date: day(2025, 1, 10), Close: 1.10},
			}
		})

		It("snaps to the closest available date", func() {
			px, err := perf.NearestDate(series, day(2025, 1, 8))
			Expect(err).To(BeNil())
			Expect(px.Date).To(Equal(day(2025, 1, 10)))
			Expect(px.Close).To(Equal(1.10))
		})

		It("returns an exact match when one exists", func() {
			px, err := perf.NearestDate(series, day(2025, 1, 4))
			Expect(err).To(BeNil())
			Expect(px.Date).To(Equal(day(2025, 1, 4)))
		})

		It("works when the target is before the series", func() {
			px, err := perf.NearestDate(series, day(2024, 12, 20))
			Expect(err).To(BeNil())
			Expect(px.Date).To(Equal(day(2025, 1, 1)))
		})
	})

	Context("when two dates are equidistant", func() {
		It("prefers the earlier date", func() {
			series := data.PriceSeries{
				{Date: day(2025, 1, 5), Close: 1.05},
				{Date: day(2025, 1, 9), Close: 1.09},
			}
			px, err := perf.NearestDate(series, day(2025, 1, 7))
			Expect(err).To(BeNil())
			Expect(px.Date).To(Equal(day(2025, 1, 5)))
		})
	})

	Context("with a single observation", func() {
		It("returns that observation", func() {
			series := data.PriceSeries{{Date: day(2025, 3, 14), Close: 2.72}}
			px, err := perf.NearestDate(series, day(2025, 6, 1))
			Expect(err).To(BeNil())
			Expect(px.Close).To(Equal(2.72))
		})
	})

	Context("with an empty series", func() {
		It("returns ErrEmptySeries", func() {
			_, err := perf.NearestDate(data.PriceSeries{}, day(2025, 1, 1))
			Expect(err).ToNot(BeNil())
			Expect(errors.Is(err, data.ErrEmptySeries)).To(BeTrue())
		})
	})
})
