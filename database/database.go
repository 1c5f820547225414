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

package database

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// PgxIface is the subset of pgxpool.Pool the package needs; tests substitute
// a pgxmock connection through SetPool
type PgxIface interface {
	Begin(context.Context) (pgx.Tx, error)
}

var pool PgxIface

// Connect opens the database pool configured by database.url
func Connect(ctx context.Context) error {
	dbURL := viper.GetString("database.url")
	subLog := log.With().Str("DatabaseURL", dbURL).Logger()

	var err error
	pool, err = pgxpool.Connect(ctx, dbURL)
	if err != nil {
		subLog.Error().Err(err).Msg("could not connect to database")
		return err
	}

	subLog.Info().Msg("connected to database")
	return nil
}

// Configured reports whether persistence is enabled; CSV artifacts are always
// written, the database tier is optional
func Configured() bool {
	return viper.GetString("database.url") != ""
}

// SetPool replaces the connection pool; for use by tests
func SetPool(p PgxIface) {
	pool = p
}
