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

package report_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-fx/perf"
	"github.com/penny-vault/pv-fx/report"
)

var _ = Describe("Chart rendering", func() {
	var records []*perf.Record

	BeforeEach(func() {
		records = []*perf.Record{
			{Ticker: "USDBRL=X", YTDReturn: 10.03, WeeklyReturn: 0.25},
			{Ticker: "EURUSD=X", YTDReturn: 5.77, WeeklyReturn: 0.46},
			{Ticker: "DX-Y.NYB", YTDReturn: -9.26, WeeklyReturn: -1.01},
		}
	})

	It("renders the YTD basket as a PNG", func() {
		png, err := report.RenderYTDChart(records, "Moedas - Acumulado do Ano")
		Expect(err).To(BeNil())
		Expect(len(png)).To(BeNumerically(">", 0))
		Expect(string(png[1:4])).To(Equal("PNG"))
	})

	It("renders the weekly view as a PNG", func() {
		png, err := report.RenderWeeklyChart(records, "Moedas - Semana")
		Expect(err).To(BeNil())
		Expect(len(png)).To(BeNumerically(">", 0))
		Expect(string(png[1:4])).To(Equal("PNG"))
	})

	It("does not reorder the basket it is given", func() {
		_, err := report.RenderWeeklyChart(records, "Moedas - Semana")
		Expect(err).To(BeNil())
		Expect(records[0].Ticker).To(Equal("USDBRL=X"))
		Expect(records[2].Ticker).To(Equal("DX-Y.NYB"))
	})
})
