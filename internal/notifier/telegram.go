package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/phuslu/log"
)

// DefaultAPIBase is the Telegram Bot API host.
const DefaultAPIBase = "https://api.telegram.org"

// telegramMaxMessage is the Bot API limit on message text length.
const telegramMaxMessage = 4096

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *http.Client

	// RetryInterval is the first wait of SendWithRetry's backoff.
	RetryInterval time.Duration
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  DefaultAPIBase,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		RetryInterval: time.Second,
	}
}

func (t *TelegramNotifier) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.APIBase, t.BotToken, method)
}

// Send sends a message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	if len(text) > telegramMaxMessage {
		text = truncate(text, telegramMaxMessage)
	}
	payload := map[string]any{
		"chat_id":                  t.ChatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(err)
		}
		return err
	}
	return nil
}

// SendWithRetry sends a message with bounded exponential backoff. Client
// errors other than 429 are not retried.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.RetryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(max(maxRetries, 0))), ctx)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		return t.Send(ctx, text)
	}, policy, func(err error, wait time.Duration) {
		attempt++
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", maxRetries+1).Dur("retry_in", wait).Msg("telegram send failed")
	})
	if err != nil {
		return fmt.Errorf("telegram send after %d attempts: %w", attempt+1, err)
	}
	return nil
}

// truncate cuts s to at most n bytes on a rune boundary and marks the cut.
func truncate(s string, n int) string {
	const marker = "\n…"
	limit := n - len(marker)
	for limit > 0 && (s[limit]&0xC0) == 0x80 {
		limit--
	}
	return s[:limit] + marker
}
