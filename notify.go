package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Notifier posts game announcements to a chat webhook. The webhook URL
// lives in Secret Manager so it never appears in the deployment config.
type Notifier struct {
	webhookURL string
}

// NewNotifier resolves the webhook secret once at startup. Failure to
// resolve only disables notifications.
func NewNotifier(cfg *Config) *Notifier {
	n := &Notifier{}

	if cfg.WebhookSecret == "" {
		return n
	}

	url, err := fetchSecret(context.Background(), cfg.WebhookSecret)
	if err != nil {
		slog.Error("failed to retrieve webhook secret", "err", err)
		return n
	}
	n.webhookURL = strings.TrimSpace(url)

	return n
}

func fetchSecret(ctx context.Context, secretName string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create secret manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}

	return string(result.Payload.GetData()), nil
}

type webhookPayload struct {
	Content string `json:"content"`
}

func (n *Notifier) post(message string) {
	if n.webhookURL == "" {
		slog.Debug("no webhook configured, dropping notification", "message", message)
		return
	}

	data, err := json.Marshal(webhookPayload{Content: message})
	if err != nil {
		slog.Error("failed to marshal webhook payload", "err", err)
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(n.webhookURL, "application/json", bytes.NewBuffer(data))
	if err != nil {
		slog.Error("failed to send webhook", "err", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		slog.Error("webhook returned non-ok status", "code", resp.StatusCode)
	}
}

// GameStarted announces a new game and its opponents.
func (n *Notifier) GameStarted(game *GameRequest) {
	var opponents []string
	for i := range game.Board.Snakes {
		if game.Board.Snakes[i].ID == game.You.ID {
			continue
		}
		opponents = append(opponents, game.Board.Snakes[i].Name)
	}

	n.post(fmt.Sprintf("Game %s started against %s", game.Game.ID, strings.Join(opponents, ", ")))
}

// GameEnded announces the result with a link to the official replay.
func (n *Notifier) GameEnded(game *GameRequest, outcome GameOutcome, description string) {
	marker := "⚪"
	switch outcome {
	case GameWon:
		marker = "🟢"
	case GameLost:
		marker = "🔴"
	}

	n.post(fmt.Sprintf("%s Game %s finished on turn %d: %s.\nhttps://play.battlesnake.com/game/%s",
		marker, game.Game.ID, game.Turn, description, game.Game.ID))
}
