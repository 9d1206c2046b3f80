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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/blvbruno/crewfm/internal/catalog"
	"github.com/blvbruno/crewfm/internal/chart"
	"github.com/blvbruno/crewfm/internal/lastfm"
)

var cfgFile string
var lastFmApiKey string
var lastFmSecret string
var users []string
var spotifyClientId string
var spotifyClientSecret string
var matchThreshold int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crewfm",
	Short: "Combined last.fm rankings for the crew",
	Long: `Merges the weekly listening charts of every configured last.fm user
into one ranking, optionally enriched with Spotify cover art.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.crewfm.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&lastFmApiKey, "api_key", "", "", "last.fm API key")
	rootCmd.MarkPersistentFlagRequired("api_key")
	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api_key"))

	rootCmd.PersistentFlags().StringVarP(
		&lastFmSecret, "secret", "", "", "last.fm shared secret")
	viper.BindPFlag("secret", rootCmd.PersistentFlags().Lookup("secret"))

	rootCmd.PersistentFlags().StringSliceVarP(
		&users, "users", "u", chart.DefaultUsers, "last.fm usernames to aggregate")
	viper.BindPFlag("users", rootCmd.PersistentFlags().Lookup("users"))

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientId, "spotify_client_id", "", "Spotify client id (falls back to SPOTIFY_CLIENT_ID)")
	viper.BindPFlag("spotify_client_id", rootCmd.PersistentFlags().Lookup("spotify_client_id"))

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientSecret, "spotify_client_secret", "", "Spotify client secret (falls back to SPOTIFY_CLIENT_SECRET and friends)")
	viper.BindPFlag("spotify_client_secret", rootCmd.PersistentFlags().Lookup("spotify_client_secret"))

	rootCmd.PersistentFlags().IntVar(
		&matchThreshold, "match_threshold", catalog.DefaultMinMatchScore,
		"Minimum catalog match score before a lookup counts as found")
	viper.BindPFlag("match_threshold", rootCmd.PersistentFlags().Lookup("match_threshold"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".crewfm" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".crewfm")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// newService wires the ranking pipeline from configuration. Missing
// Spotify credentials disable enrichment without failing.
func newService(ctx context.Context) *chart.Service {
	client := lastfm.New(viper.GetString("api_key"), viper.GetString("secret"))

	var searcher catalog.Searcher
	creds := catalogCredentials()
	if creds.Configured() {
		spotifyClient, err := catalog.NewClient(ctx, creds, viper.GetInt("match_threshold"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Spotify client unavailable, skipping enrichment: %v\n", err)
		} else {
			searcher = spotifyClient
		}
	} else {
		fmt.Fprintln(os.Stderr, "Spotify credentials not configured, skipping enrichment")
	}

	return chart.New(client, catalog.NewEnricher(searcher), viper.GetStringSlice("users"))
}

func catalogCredentials() catalog.Credentials {
	creds := catalog.CredentialsFromEnv()
	if id := viper.GetString("spotify_client_id"); id != "" {
		creds.ClientID = id
	}
	if secret := viper.GetString("spotify_client_secret"); secret != "" {
		creds.ClientSecret = secret
	}
	return creds
}
