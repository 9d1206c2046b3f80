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
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var annualCmd = &cobra.Command{
	Use:   "annual [year]",
	Short: "Year-end album ranking",
	Long: `Ranks albums across the whole year using percentage points: each
user's top albums earn points for the share of their listening they
took up, and albums several users agree on pull ahead. Singles are
filtered out.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printAnnual(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(annualCmd)
}

func printAnnual(arg string) error {
	year, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("Invalid year: %q", arg)
	}

	ctx := context.Background()
	entries, err := newService(ctx).AnnualAlbums(ctx, year, time.Now())
	if err != nil {
		return fmt.Errorf("computing annual ranking: %w", err)
	}

	fmt.Println(entryRanking(entries, "Album", true))
	return nil
}
