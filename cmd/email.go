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
	"html"
	"os"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blvbruno/crewfm/internal/ranking"
)

type SendEmailConfig struct {
	From   string
	To     string
	Mode   string
	DryRun bool
	Start  time.Time
	End    time.Time
}

var emailMode string
var emailCmd = &cobra.Command{
	Use:   "email <address> [from] [to (optional)]",
	Short: "Emails a ranking for a period",
	Long: `Sends the combined ranking for the given period to the specified
address. --mode selects albums, tracks, or artists. Date strings look
like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(2, 3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		switch emailMode {
		case "albums", "tracks", "artists":
			return nil
		}
		return fmt.Errorf("Invalid mode %q: expected albums, tracks, or artists", emailMode)
	},
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := parseDateRangeFromArgs(args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		config := SendEmailConfig{
			From:   viper.GetString("from"),
			To:     args[0],
			Mode:   emailMode,
			DryRun: viper.GetBool("dry_run"),
			Start:  start,
			End:    end,
		}
		err = sendEmail(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	emailCmd.Flags().StringVar(&emailMode, "mode", "albums", "ranking to send: albums, tracks, or artists")

	var dryRun bool
	emailCmd.Flags().BoolVar(&dryRun, "dry_run", false, "print the email instead of sending it")
	viper.BindPFlag("dry_run", emailCmd.Flags().Lookup("dry_run"))

	var sendgridAPIKey string
	emailCmd.Flags().StringVar(&sendgridAPIKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))
}

func sendEmail(config SendEmailConfig) error {
	ctx := context.Background()
	svc := newService(ctx)

	var entries []ranking.Entry
	var entity string
	var err error
	switch config.Mode {
	case "tracks":
		entity = "Song"
		entries, err = svc.Tracks(ctx, config.Start, config.End)
	case "artists":
		entity = "Artist"
		entries, err = svc.Artists(ctx, config.Start, config.End)
	default:
		entity = "Album"
		entries, err = svc.Albums(ctx, config.Start, config.End)
	}
	if err != nil {
		return fmt.Errorf("computing %s ranking: %w", config.Mode, err)
	}

	subject := fmt.Sprintf("%s ranking for %s to %s", entity,
		config.Start.Format("2006-01-02"), config.End.Format("2006-01-02"))
	plain := entryRanking(entries, entity, entity == "Album").String()
	body := emailBody(entries, entity)

	if config.DryRun {
		fmt.Printf("To: %s\nSubject: %s\n\n%s\n", config.To, subject, plain)
		return nil
	}

	from := mail.NewEmail("crewfm", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, plain, body)
	client := sendgrid.NewSendClient(viper.GetString("sendgrid_api_key"))
	_, err = client.Send(message)
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	return nil
}

// emailBody renders the ranking as a plain HTML table.
func emailBody(entries []ranking.Entry, entity string) string {
	var b strings.Builder
	b.WriteString("<table border=\"1\" cellpadding=\"4\" cellspacing=\"0\">\n")
	fmt.Fprintf(&b, "<tr><th>Rank</th><th>%s</th><th>Plays</th><th>Score</th><th>Listeners</th></tr>\n", entity)
	for _, e := range entries {
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>\n",
			e.Rank, html.EscapeString(e.Name), e.Plays, e.Score, e.Listeners())
	}
	b.WriteString("</table>\n")
	return b.String()
}
