package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// postAlertWebhook delivers snapshot alerts to the configured webhook URL.
// A no-op when no webhook is configured.
func (a *App) postAlertWebhook(ctx context.Context, in alertReq) error {
	if a.cfg.AlertWebhook == "" {
		return nil
	}
	if len(in.Messages) == 0 {
		return fmt.Errorf("empty alert")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal alert req: %w", err)
	}

	client := &http.Client{
		Timeout: 15 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.AlertWebhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook non-2xx: %s, body: %s", resp.Status, string(data))
	}
	return nil
}
