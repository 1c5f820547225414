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

package data

import (
	"context"
	"time"
)

// Price is a single end-of-day observation
type Price struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds end-of-day closes for one instrument over one fetch
// window, ordered by date ascending. A provider returns an empty series, not
// an error, when no trading data falls in the requested range.
type PriceSeries []Price

func (s PriceSeries) Empty() bool {
	return len(s) == 0
}

// First returns the earliest observation; callers must check Empty first
func (s PriceSeries) First() Price {
	return s[0]
}

// Last returns the most recent observation; callers must check Empty first
func (s PriceSeries) Last() Price {
	return s[len(s)-1]
}

// Provider fetches an end-of-day close series for a ticker over [begin, end);
// end is exclusive
type Provider interface {
	FetchEOD(ctx context.Context, ticker string, begin time.Time, end time.Time) (PriceSeries, error)
}
