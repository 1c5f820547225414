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
	"github.com/penny-vault/pv-fx/fx"
)

// Return computes the signed percentage change from basePrice to
// currentPrice, adjusted for the instrument's quoting direction.
//
// Commodities and the dollar index are quoted in the reporting direction
// already. Currency series quoted USD-per-foreign (invert=false) rise when
// the foreign currency weakens, so their raw return is negated to express
// foreign-currency performance against USD.
//
// No rounding happens here; formatting is a presentation concern.
func Return(basePrice float64, currentPrice float64, inst *fx.Instrument) (float64, error) {
	if basePrice == 0 {
		return 0, ErrInvalidBasePrice
	}

	raw := (currentPrice - basePrice) / basePrice * 100

	if inst.Class == fx.ClassCurrency && !inst.Invert {
		return -raw, nil
	}
	return raw, nil
}
