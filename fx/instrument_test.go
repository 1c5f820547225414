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

package fx_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-fx/fx"
)

var _ = Describe("Instrument registry", func() {
	Context("the currency universe", func() {
		It("tracks sixteen currency pairs", func() {
			Expect(fx.Currencies()).To(HaveLen(16))
		})

		It("marks only foreign-per-USD quotes as inverted", func() {
			inverted := make([]string, 0, 4)
			for _, inst := range fx.Currencies() {
				Expect(inst.Class).To(Equal(fx.ClassCurrency))
				if inst.Invert {
					inverted = append(inverted, inst.Ticker)
				}
			}
			Expect(inverted).To(ConsistOf("EURUSD=X", "NZDUSD=X", "AUDUSD=X", "GBPUSD=X"))
		})

		It("carries a region code for every pair", func() {
			for _, inst := range fx.Currencies() {
				Expect(inst.RegionCode).ToNot(BeEmpty())
			}
		})
	})

	Context("the commodity universe", func() {
		It("tracks eleven futures contracts", func() {
			Expect(fx.Commodities()).To(HaveLen(11))
			for _, inst := range fx.Commodities() {
				Expect(inst.Class).To(Equal(fx.ClassCommodity))
				Expect(inst.Invert).To(BeFalse())
			}
		})
	})

	Context("the dollar index", func() {
		It("is classed as an index and never inverted", func() {
			dxy := fx.DollarIndex()
			Expect(dxy.Ticker).To(Equal("DX-Y.NYB"))
			Expect(dxy.Class).To(Equal(fx.ClassIndex))
			Expect(dxy.Invert).To(BeFalse())
		})
	})

	Context("looking up by ticker", func() {
		It("finds registered instruments", func() {
			inst, err := fx.FromTicker("GC=F")
			Expect(err).To(BeNil())
			Expect(inst.Name).To(Equal("Ouro"))
		})

		It("finds the dollar index", func() {
			inst, err := fx.FromTicker("DX-Y.NYB")
			Expect(err).To(BeNil())
			Expect(inst.Class).To(Equal(fx.ClassIndex))
		})

		It("errors for unknown tickers", func() {
			_, err := fx.FromTicker("UNKNOWN")
			Expect(err).ToNot(BeNil())
			Expect(errors.Is(err, fx.ErrNotFound)).To(BeTrue())
		})
	})
})
