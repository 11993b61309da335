package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/ports"
)

const defaultBaseURL = "https://api.telegram.org"

// Notifier sends batch summaries to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// WithBaseURL points the notifier at another Bot API host.
func (n *Notifier) WithBaseURL(base string) *Notifier {
	n.baseURL = strings.TrimRight(base, "/")
	return n
}

// Configured reports whether both token and chat are present.
func (n *Notifier) Configured() bool {
	return n != nil && n.botToken != "" && n.chatID != ""
}

// PublishSummary posts a Markdown digest of the batch to Telegram.
func (n *Notifier) PublishSummary(ctx context.Context, summary domain.BatchSummary) error {
	if !n.Configured() || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", FormatSummary(summary))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// FormatSummary renders one line per category.
func FormatSummary(summary domain.BatchSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*NewsWriter batch* %s\n", summary.RunAt.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "%d/%d articles published\n\n", summary.Succeeded(), len(summary.Results))
	for _, r := range summary.Results {
		if r.OK {
			fmt.Fprintf(&b, "- %s: `%s`\n", r.Category.Title(), r.Slug)
			continue
		}
		fmt.Fprintf(&b, "- %s: failed (%s)\n", r.Category.Title(), r.Error)
	}
	return strings.TrimRight(b.String(), "\n")
}
