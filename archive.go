package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// Archive stores finished game records and replay animations in a
// Cloud Storage bucket. A missing bucket name disables it.
type Archive struct {
	bucket string
}

// NewArchive builds the archive from the configuration.
func NewArchive(cfg *Config) *Archive {
	if cfg.ReplayBucket == "" {
		slog.Info("replay archive disabled, no bucket configured")
	}
	return &Archive{bucket: cfg.ReplayBucket}
}

func (a *Archive) enabled() bool {
	return a.bucket != ""
}

func (a *Archive) upload(ctx context.Context, name, contentType string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	writer := client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish upload of %s: %w", name, err)
	}

	slog.Debug("uploaded object", "bucket", a.bucket, "name", name, "bytes", len(data))
	return nil
}

// UploadRecord stores the final /end payload as JSON.
func (a *Archive) UploadRecord(ctx context.Context, game *GameRequest) error {
	if !a.enabled() {
		return nil
	}

	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	name := fmt.Sprintf("games/%s.json", game.Game.ID)
	return a.upload(ctx, name, "application/json", data)
}

// UploadAnimation stores a rendered replay GIF.
func (a *Archive) UploadAnimation(ctx context.Context, gameID string, gifData []byte) error {
	if !a.enabled() {
		return nil
	}

	name := fmt.Sprintf("replays/%s.gif", gameID)
	return a.upload(ctx, name, "image/gif", gifData)
}

// ReplayEntry is one archived game in the listing.
type ReplayEntry struct {
	GameID  string    `json:"game_id"`
	Created time.Time `json:"created"`
	Size    int64     `json:"size"`
}

// ListReplays returns the archived replay animations, newest last.
func (a *Archive) ListReplays(ctx context.Context) ([]ReplayEntry, error) {
	if !a.enabled() {
		return nil, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	var entries []ReplayEntry

	it := client.Bucket(a.bucket).Objects(ctx, &storage.Query{Prefix: "replays/"})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list replays: %w", err)
		}

		gameID := strings.TrimSuffix(strings.TrimPrefix(attrs.Name, "replays/"), ".gif")

		entries = append(entries, ReplayEntry{
			GameID:  gameID,
			Created: attrs.Created,
			Size:    attrs.Size,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Created.Before(entries[j].Created)
	})

	return entries, nil
}

func (s *server) handleReplays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := s.archive.ListReplays(ctx)
	if err != nil {
		slog.Error("failed to list replays", "err", err)
		http.Error(w, "failed to list replays", http.StatusInternalServerError)
		return
	}

	writeJSON(w, entries)
}
