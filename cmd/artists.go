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
)

var artistsNumber int
var artistsCmd = &cobra.Command{
	Use:   "artists [from] [to (optional)]",
	Short: "Combined artist ranking for a period",
	Long: `Merges every user's weekly artist chart into one capped-plays ranking.
Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printArtists(args, artistsNumber)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(artistsCmd)

	artistsCmd.Flags().IntVarP(&artistsNumber, "number", "n", 0, "number of results to show (0 shows all)")
}

func printArtists(args []string, number int) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	entries, err := newService(ctx).Artists(ctx, start, end)
	if err != nil {
		return fmt.Errorf("computing artist ranking: %w", err)
	}
	if number > 0 && len(entries) > number {
		entries = entries[:number]
	}

	fmt.Println(entryRanking(entries, "Artist", false))
	return nil
}
