/*
Copyright 2025 The crewfm Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rankings as a JSON API",
	Long: `Starts an HTTP server exposing the rankings:

  GET /api/albums?startDate=yyyy-mm-dd&endDate=yyyy-mm-dd
  GET /api/tracks?startDate=yyyy-mm-dd&endDate=yyyy-mm-dd
  GET /api/artists?startDate=yyyy-mm-dd&endDate=yyyy-mm-dd
  GET /api/annual?year=yyyy
  GET /api/weighted?user=username`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", ":8080", "address to listen on")
	viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
}

func serve() {
	fx.New(
		fx.Provide(func() rankingService {
			return newService(context.Background())
		}),
		fx.Provide(NewRouter),
		fx.Invoke(StartServer),
	).Run()
}

func StartServer(lifecycle fx.Lifecycle, router *mux.Router) {
	address := viper.GetString("address")
	server := &http.Server{
		Addr:    address,
		Handler: router,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Printf("Starting server on %s", address)
				if err := server.ListenAndServe(); err != nil {
					log.Printf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
