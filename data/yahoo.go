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
	"fmt"
	"io/ioutil"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/penny-vault/pv-fx/common"
	"github.com/penny-vault/pv-fx/observability/opentelemetry"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// yahoo hosts answer interchangeably; the second is tried when the first
// errors out
var yahooHosts = []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"}

type yahoo struct{}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// NewYahoo creates a new Yahoo Finance end-of-day data provider
func NewYahoo() Provider {
	return &yahoo{}
}

// FetchEOD loads daily closes for ticker over [begin, end). A window with no
// trading days yields an empty series; only transport and decode failures
// return an error.
func (y *yahoo) FetchEOD(ctx context.Context, ticker string, begin time.Time, end time.Time) (PriceSeries, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.FetchEOD")
	defer span.End()

	span.SetAttributes(
		attribute.String("Ticker", ticker),
		attribute.String("Begin", begin.Format("2006-01-02")),
		attribute.String("End", end.Format("2006-01-02")),
	)

	subLog := log.With().Str("Ticker", ticker).Time("Begin", begin).Time("End", end).Logger()

	if !begin.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	cacheKey := fmt.Sprintf("yahoo:%s:%d:%d", ticker, begin.Unix(), end.Unix())
	if body, err := common.CacheGet(cacheKey); err == nil && len(body) > 0 {
		subLog.Debug().Msg("yahoo response served from cache")
		return y.parseChart(body, end)
	}

	var body []byte
	var lastErr error
	for _, host := range yahooHosts {
		reqURL := fmt.Sprintf("https://%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div%%2Csplits",
			host, url.PathEscape(ticker), begin.Unix(), end.Unix())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err = ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 400 {
			subLog.Warn().Int("HTTPResponseStatusCode", resp.StatusCode).Str("Host", host).Msg("yahoo request failed")
			lastErr = fmt.Errorf("HTTP request returned invalid status code: %d", resp.StatusCode)
			body = nil
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		span.RecordError(lastErr)
		span.SetStatus(codes.Error, "yahoo http request failed")
		subLog.Error().Err(lastErr).Msg("yahoo http request failed")
		return nil, lastErr
	}

	series, err := y.parseChart(body, end)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not parse yahoo response")
		subLog.Error().Err(err).Msg("could not parse yahoo response")
		return nil, err
	}

	if err := common.CacheSet(cacheKey, body); err != nil {
		subLog.Warn().Err(err).Msg("could not cache yahoo response")
	}

	return series, nil
}

func (y *yahoo) parseChart(body []byte, end time.Time) (PriceSeries, error) {
	var chart yahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, err
	}

	// no result block means no trading data in range
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return PriceSeries{}, nil
	}

	tz := common.GetTimezone()
	timestamps := chart.Chart.Result[0].Timestamp
	closes := chart.Chart.Result[0].Indicators.Quote[0].Close

	series := make(PriceSeries, 0, len(timestamps))
	for idx, ts := range timestamps {
		if idx >= len(closes) {
			break
		}
		px := closes[idx]
		if px == 0 || math.IsNaN(px) {
			// provider emits null bars on half-holidays
			continue
		}

		dt := time.Unix(ts, 0).In(tz)
		dt = time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, tz)
		if !dt.Before(end) {
			// period2 is treated as inclusive upstream; enforce [begin, end)
			continue
		}

		series = append(series, Price{Date: dt, Close: px})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series, nil
}
