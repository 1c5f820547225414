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

package common

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pierrec/lz4/v4"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ctx = context.Background()
var rdb *redis.Client
var cache *lru.Cache

// SetupCache initializes the in-process LRU and, when cache.redis is set, a
// shared redis tier. Values are lz4 compressed before they are stored.
func SetupCache() {
	var err error
	if viper.GetBool("cache.redis") {
		opt, err := redis.ParseURL(viper.GetString("cache.redis_url"))
		if err != nil {
			log.Error().Err(err).Msg("could not parse redis URL")
			os.Exit(1)
		}

		rdb = redis.NewClient(opt)
	}

	size := viper.GetInt("cache.local_size")
	if size == 0 {
		size = 256
	}
	cache, err = lru.New(size)
	if err != nil {
		log.Error().Err(err).Msg("could not create LRU cache")
		os.Exit(1)
	}
}

func CacheSet(key string, val []byte) error {
	b2, err := compress(val)
	if err != nil {
		return err
	}
	cache.Add(key, b2)

	if viper.GetBool("cache.redis") {
		expires := time.Duration(viper.GetInt("cache.ttl")) * time.Second
		return rdb.Set(ctx, key, b2, expires).Err()
	}
	return nil
}

func CacheGet(key string) ([]byte, error) {
	v2, ok := cache.Get(key)
	if ok {
		return decompress(v2.([]byte))
	}

	if viper.GetBool("cache.redis") {
		expires := time.Duration(viper.GetInt("cache.ttl")) * time.Second
		val, err := rdb.GetEx(ctx, key, expires).Bytes()
		if err != nil {
			return []byte{}, err
		}
		return decompress(val)
	}

	return []byte{}, nil
}

func compress(in []byte) ([]byte, error) {
	w := &bytes.Buffer{}
	zw := lz4.NewWriter(w)
	if _, err := io.Copy(zw, bytes.NewReader(in)); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decompress(in []byte) ([]byte, error) {
	w := &bytes.Buffer{}
	zr := lz4.NewReader(bytes.NewReader(in))
	if _, err := io.Copy(w, zr); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
