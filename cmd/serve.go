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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/penny-vault/pv-fx/common"
	"github.com/penny-vault/pv-fx/database"
	"github.com/penny-vault/pv-fx/middleware"
	"github.com/penny-vault/pv-fx/observability/opentelemetry"

	"github.com/go-co-op/gocron"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	viper.BindEnv("schedule.time", "PVFX_SCHEDULE_TIME")
	serveCmd.Flags().String("schedule-time", "18:00", "Time of day (HH:MM, New York) to run the report")
	viper.BindPFlag("schedule.time", serveCmd.Flags().Lookup("schedule-time"))

	rootCmd.AddCommand(serveCmd)
}

// chartArtifacts whitelists the file names the chart endpoint will serve
var chartArtifacts = map[string]bool{
	"currency_ytd.png":     true,
	"currency_weekly.png":  true,
	"commodity_ytd.png":    true,
	"commodity_weekly.png": true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pv-fx server",
	Long:  `Run an HTTP server that recomputes the performance report on a daily schedule and serves the latest results`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()

		shutdown, err := opentelemetry.Setup()
		if err != nil {
			log.Error().Err(err).Msg("could not setup opentelemetry")
		}

		ctx := context.Background()
		if shutdown != nil {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down tracing")
				}
			}()
		}

		if database.Configured() {
			if err := database.Connect(ctx); err != nil {
				log.Fatal().Err(err).Msg("could not connect to database")
			}
		}

		app := fiber.New(fiber.Config{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		})

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("error shutting down server")
			}
		}()

		corsConfig := cors.Config{
			AllowOrigins: "*",
			AllowHeaders: "*",
			AllowMethods: "GET,HEAD",
		}
		app.Use(cors.New(corsConfig))

		app.Use(middleware.NewLogger())

		setupRoutes(app)

		tz := common.GetTimezone()
		scheduler := gocron.NewScheduler(tz)
		scheduler.Every(1).Day().At(viper.GetString("schedule.time")).Do(func() {
			if err := runReport(context.Background(), time.Now().In(tz)); err != nil {
				log.Error().Err(err).Msg("scheduled report run failed")
			}
		})
		scheduler.StartAsync()

		// seed the API with an initial run so it does not have to wait for
		// the first scheduled tick
		go func() {
			if err := runReport(context.Background(), time.Now().In(tz)); err != nil {
				log.Error().Err(err).Msg("initial report run failed")
			}
		}()

		if err := app.Listen(":" + viper.GetString("server.port")); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	},
}

func setupRoutes(app *fiber.App) {
	v1 := app.Group("/v1")

	v1.Get("/currencies", func(c *fiber.Ctx) error {
		run := latest()
		if run == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "no report computed yet")
		}
		return c.JSON(fiber.Map{
			"runId":       run.RunID.String(),
			"asOf":        run.AsOf.Format("2006-01-02"),
			"performance": run.Currencies,
		})
	})

	v1.Get("/commodities", func(c *fiber.Ctx) error {
		run := latest()
		if run == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "no report computed yet")
		}
		return c.JSON(fiber.Map{
			"runId":       run.RunID.String(),
			"asOf":        run.AsOf.Format("2006-01-02"),
			"performance": run.Commodities,
		})
	})

	v1.Get("/charts/:name", func(c *fiber.Ctx) error {
		name := c.Params("name")
		if !chartArtifacts[name] {
			return fiber.NewError(fiber.StatusNotFound, "unknown chart")
		}
		return c.SendFile(filepath.Join(viper.GetString("reports.dir"), name))
	})
}
