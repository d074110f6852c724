package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Frame types of the engine event stream. The stream uses its own field
// casing, separate from the REST payloads.

type FrameSnake struct {
	ID     string  `json:"ID"`
	Name   string  `json:"Name"`
	Body   []Coord `json:"Body"`
	Health int     `json:"Health"`
	Color  string  `json:"Color"`
	Death  *Death  `json:"Death"`
}

type Death struct {
	Cause        string `json:"Cause"`
	Turn         int    `json:"Turn"`
	EliminatedBy string `json:"EliminatedBy"`
}

type FrameEvent struct {
	Type string `json:"Type"`
	Data struct {
		ID     string       `json:"ID"`
		Turn   int          `json:"Turn"`
		Snakes []FrameSnake `json:"Snakes"`
		Food   []Coord      `json:"Food"`
		Width  int          `json:"Width"`
		Height int          `json:"Height"`
	} `json:"Data"`
}

// ReplayFrame is one rendered turn of a finished game.
type ReplayFrame struct {
	Turn   int
	Width  int
	Height int
	Snakes []FrameSnake
	Food   []Coord
}

// collectGameFrames replays a finished game from the engine event
// stream and reports whether our snake survived to the end.
func collectGameFrames(ctx context.Context, engineURL, gameID, youID string) ([]ReplayFrame, bool, error) {
	wsURL := fmt.Sprintf("%s/games/%s/events", engineURL, gameID)

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, wsURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to connect to engine event stream: %w", err)
	}
	defer conn.Close()

	var frames []ReplayFrame
	var boardWidth, boardHeight int
	var lastEvent FrameEvent

	for {
		_, message, err := conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			break
		} else if err != nil {
			return nil, false, fmt.Errorf("failed to read frame: %w", err)
		}

		var event FrameEvent
		if err := json.Unmarshal(message, &event); err != nil {
			slog.Error("failed to unmarshal frame", "err", err)
			continue
		}

		if event.Type == "game_end" {
			boardWidth = event.Data.Width
			boardHeight = event.Data.Height
			break
		}
		lastEvent = event

		frames = append(frames, ReplayFrame{
			Turn:   event.Data.Turn,
			Snakes: event.Data.Snakes,
			Food:   event.Data.Food,
		})
	}

	won := false
	for _, snake := range lastEvent.Data.Snakes {
		if snake.ID == youID && snake.Death == nil {
			won = true
			break
		}
	}

	// the dimensions only arrive with game_end
	for i := range frames {
		frames[i].Width = boardWidth
		frames[i].Height = boardHeight
	}

	return frames, won, nil
}

// postGame runs the best-effort pipeline after /end: collect the replay
// from the engine, render it, archive record and animation, notify.
func (s *server) postGame(game *GameRequest, outcome GameOutcome, description string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	frames, won, err := collectGameFrames(ctx, s.cfg.EngineURL, game.Game.ID, game.You.ID)
	if err != nil {
		slog.Error("failed to collect game frames", "game_id", game.Game.ID, "err", err)
	}
	slog.Info("collected replay frames", "game_id", game.Game.ID, "frames", len(frames))

	var gifData []byte
	if len(frames) > 0 {
		gifData, err = renderReplayGIF(frames, won)
		if err != nil {
			slog.Error("failed to render replay", "game_id", game.Game.ID, "err", err)
		}
	}

	// record upload and animation upload are independent
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return s.archive.UploadRecord(groupCtx, game)
	})
	if len(gifData) > 0 {
		group.Go(func() error {
			return s.archive.UploadAnimation(groupCtx, game.Game.ID, gifData)
		})
	}
	if err := group.Wait(); err != nil {
		slog.Error("failed to archive game", "game_id", game.Game.ID, "err", err)
	}

	s.notifier.GameEnded(game, outcome, description)
}
