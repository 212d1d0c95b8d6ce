package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/powerball-results/internal/draw"
)

const maxTweetLength = 280

// TwitterCredentials holds the OAuth1 keys of the posting account
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Complete reports whether every credential is set
func (c TwitterCredentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// TwitterNotifier posts draw announcements to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier from OAuth1 credentials
func NewTwitterNotifier(creds TwitterCredentials) (*TwitterNotifier, error) {
	if !creds.Complete() {
		return nil, errors.New("missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	return newTwitterNotifier(config.Client(oauth1.NoContext, token)), nil
}

func newTwitterNotifier(httpClient *http.Client) *TwitterNotifier {
	return &TwitterNotifier{client: twitter.NewClient(httpClient)}
}

// Notify posts one tweet for the draw
func (n *TwitterNotifier) Notify(ctx context.Context, snap *draw.Snapshot) error {
	if snap == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := n.client.Statuses.Update(formatTweet(snap), nil); err != nil {
		return fmt.Errorf("failed to post tweet for draw %s: %w", snap.Draw.Date, err)
	}
	return nil
}

// formatTweet formats a draw as a tweet
func formatTweet(snap *draw.Snapshot) string {
	var b strings.Builder
	d := snap.Draw

	b.WriteString("🎱 Resultados del Powerball")
	if d.Date != "" {
		b.WriteString(" " + d.Date)
	}
	b.WriteString("\n\n")

	b.WriteString(draw.FormatNumbers(d.Numbers))
	if d.Special != nil {
		fmt.Fprintf(&b, " 🔴 %d", *d.Special)
	}
	b.WriteString("\n")

	if d.Multiplier != nil {
		fmt.Fprintf(&b, "Power Play: %dx\n", *d.Multiplier)
	}
	if d.JackpotWon {
		if d.WinnerRegion != "" {
			fmt.Fprintf(&b, "🏆 Premio mayor ganado en %s\n", d.WinnerRegion)
		} else {
			b.WriteString("🏆 Premio mayor ganado\n")
		}
	}

	if next := snap.Next; next != nil && next.Estimated != nil {
		b.WriteString("\n💰 Próximo sorteo")
		if next.Date != "" {
			b.WriteString(" " + next.Date)
		}
		fmt.Fprintf(&b, ": %s", draw.FormatAmount(*next.Estimated))
		if next.Cash != nil {
			fmt.Fprintf(&b, " (efectivo %s)", draw.FormatAmount(*next.Cash))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n#Powerball #Loteria")

	return truncate(b.String(), maxTweetLength)
}

// truncate shortens s to at most limit runes, ending in an ellipsis
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}
