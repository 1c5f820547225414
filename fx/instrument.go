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

package fx

// AssetClass partitions the instrument universe; it selects both the return
// inversion policy and which basket an instrument is reported in
type AssetClass string

const (
	ClassCurrency  AssetClass = "currency"
	ClassCommodity AssetClass = "commodity"
	ClassIndex     AssetClass = "index"
)

// Instrument is a tradeable asset tracked by the report. Invert reports
// whether the raw series is already quoted foreign-per-USD (EUR/USD style);
// when false the series is USD-per-foreign and its return must be negated to
// express foreign-currency performance against the dollar.
type Instrument struct {
	Ticker     string     `json:"ticker"`
	Name       string     `json:"name"`
	Class      AssetClass `json:"assetClass"`
	Invert     bool       `json:"invert"`
	RegionCode string     `json:"regionCode,omitempty"`
}

// registry order is report discovery order; sorts over the baskets are stable
// so this order breaks ties
var currencies = []*Instrument{
	{Ticker: "USDTRY=X", Name: "Lira Turca", Class: ClassCurrency, Invert: false, RegionCode: "TR"},
	{Ticker: "USDBRL=X", Name: "Real", Class: ClassCurrency, Invert: false, RegionCode: "BR"},
	{Ticker: "USDARS=X", Name: "Peso Argentino", Class: ClassCurrency, Invert: false, RegionCode: "AR"},
	{Ticker: "USDMXN=X", Name: "Peso Mexicano", Class: ClassCurrency, Invert: false, RegionCode: "MX"},
	{Ticker: "USDCAD=X", Name: "Dólar Canadense", Class: ClassCurrency, Invert: false, RegionCode: "CA"},
	{Ticker: "EURUSD=X", Name: "Euro", Class: ClassCurrency, Invert: true, RegionCode: "EU"},
	{Ticker: "JPY=X", Name: "Iene Japonês", Class: ClassCurrency, Invert: false, RegionCode: "JP"},
	{Ticker: "USDCNY=X", Name: "Yuan Chinês", Class: ClassCurrency, Invert: false, RegionCode: "CN"},
	{Ticker: "USDKRW=X", Name: "Won Sul-Coreano", Class: ClassCurrency, Invert: false, RegionCode: "KR"},
	{Ticker: "USDINR=X", Name: "Rúpia Indiana", Class: ClassCurrency, Invert: false, RegionCode: "IN"},
	{Ticker: "USDSGD=X", Name: "Dólar de Singapura", Class: ClassCurrency, Invert: false, RegionCode: "SG"},
	{Ticker: "NZDUSD=X", Name: "Dólar Neozelandês", Class: ClassCurrency, Invert: true, RegionCode: "NZ"},
	{Ticker: "AUDUSD=X", Name: "Dólar Australiano", Class: ClassCurrency, Invert: true, RegionCode: "AU"},
	{Ticker: "USDRUB=X", Name: "Rublo Russo", Class: ClassCurrency, Invert: false, RegionCode: "RU"},
	{Ticker: "GBPUSD=X", Name: "Libra Esterlina", Class: ClassCurrency, Invert: true, RegionCode: "GB"},
	{Ticker: "USDHUF=X", Name: "Florim Húngaro", Class: ClassCurrency, Invert: false, RegionCode: "HU"},
}

var dollarIndex = &Instrument{
	Ticker: "DX-Y.NYB",
	Name:   "Índice do Dólar (DXY)",
	Class:  ClassIndex,
}

var commodities = []*Instrument{
	{Ticker: "CL=F", Name: "Petróleo WTI", Class: ClassCommodity},
	{Ticker: "BZ=F", Name: "Petróleo Brent", Class: ClassCommodity},
	{Ticker: "GC=F", Name: "Ouro", Class: ClassCommodity},
	{Ticker: "SI=F", Name: "Prata", Class: ClassCommodity},
	{Ticker: "HG=F", Name: "Cobre", Class: ClassCommodity},
	{Ticker: "PL=F", Name: "Platina", Class: ClassCommodity},
	{Ticker: "PA=F", Name: "Paládio", Class: ClassCommodity},
	{Ticker: "NG=F", Name: "Gás Natural", Class: ClassCommodity},
	{Ticker: "ZC=F", Name: "Milho", Class: ClassCommodity},
	{Ticker: "ZS=F", Name: "Soja", Class: ClassCommodity},
	{Ticker: "ZW=F", Name: "Trigo", Class: ClassCommodity},
}

var instrumentsByTicker map[string]*Instrument

func init() {
	instrumentsByTicker = make(map[string]*Instrument, len(currencies)+len(commodities)+1)
	for _, inst := range currencies {
		instrumentsByTicker[inst.Ticker] = inst
	}
	for _, inst := range commodities {
		instrumentsByTicker[inst.Ticker] = inst
	}
	instrumentsByTicker[dollarIndex.Ticker] = dollarIndex
}

// Currencies returns the currency-pair universe in registry order
func Currencies() []*Instrument {
	return currencies
}

// Commodities returns the commodity-future universe in registry order
func Commodities() []*Instrument {
	return commodities
}

// DollarIndex returns the DXY instrument
func DollarIndex() *Instrument {
	return dollarIndex
}

// FromTicker looks an instrument up by its ticker symbol
func FromTicker(ticker string) (*Instrument, error) {
	if inst, ok := instrumentsByTicker[ticker]; ok {
		return inst, nil
	}
	return nil, ErrNotFound
}
