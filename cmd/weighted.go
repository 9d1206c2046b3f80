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
	"time"

	"github.com/spf13/cobra"
)

var weightedUser string
var weightedCmd = &cobra.Command{
	Use:   "weighted",
	Short: "Recency-weighted track ranking for one user",
	Long: `Ranks one user's tracks over the last 30 days, weighting recent
plays higher: the last week counts 5x, the week before 3x, and the
rest of the month 2x.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printWeighted(weightedUser)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(weightedCmd)

	// No shorthand: -u belongs to the root's --users flag.
	weightedCmd.Flags().StringVar(&weightedUser, "user", "", "Last.fm username to rank")
	weightedCmd.MarkFlagRequired("user")
}

func printWeighted(user string) error {
	ctx := context.Background()
	entries, err := newService(ctx).WeightedTracks(ctx, user, time.Now())
	if err != nil {
		return fmt.Errorf("computing weighted ranking: %w", err)
	}

	fmt.Println(weightedRanking(entries, user))
	return nil
}
