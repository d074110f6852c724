package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

type server struct {
	cfg      *Config
	notifier *Notifier
	archive  *Archive
}

func main() {
	handler := NewCloudLogHandler(os.Stdout, slog.LevelInfo)
	if os.Getenv("BAMBOOZLE_DEBUG") != "" {
		handler = NewCloudLogHandler(os.Stdout, slog.LevelDebug)
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if dump, err := cfg.DumpYAML(); err == nil {
		slog.Debug("effective configuration", "config", dump)
	}

	srv := &server{
		cfg:      cfg,
		notifier: NewNotifier(cfg),
		archive:  NewArchive(cfg),
	}

	http.HandleFunc("/", srv.handleIndex)
	http.HandleFunc("/start", srv.handleStart)
	http.HandleFunc("/move", srv.handleMove)
	http.HandleFunc("/end", srv.handleEnd)
	http.HandleFunc("/replays", srv.handleReplays)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("starting battlesnake agent", "addr", addr, "name", cfg.Name)
	log.Fatal(http.ListenAndServe(addr, nil))
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"apiversion": "1",
		"author":     "hackspiel",
		"name":       s.cfg.Name,
		"color":      "#000000",
		"head":       "pirate",
		"tail":       "pirate",
		"version":    "1.1.0",
	})
}

// decodeGame parses the payload and gives engine-less local games an id
// so the post-game pipeline has something to key on.
func decodeGame(r *http.Request) (*GameRequest, error) {
	var game GameRequest
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		return nil, fmt.Errorf("failed to decode game state: %w", err)
	}
	if game.Game.ID == "" {
		game.Game.ID = uuid.NewString()
	}
	return &game, nil
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	game, err := decodeGame(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := determineMode(game)
	slog.Info("game started",
		"game_id", game.Game.ID,
		"mode", mode.String(),
		"snakes", snakeNames(game),
	)

	s.notifier.GameStarted(game)

	writeJSON(w, map[string]string{})
}

func (s *server) handleMove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	game, err := decodeGame(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := determineMode(game)
	heuristic := heuristicForMode(s.cfg, mode, len(game.Board.Snakes))

	action := IterativeSearchMT(s.cfg, game, heuristic)

	elapsed := time.Since(start)
	if elapsed.Milliseconds() > 450 {
		slog.Warn("move calculation took too long",
			"game_id", game.Game.ID,
			"turn", game.Turn,
			"duration_ms", elapsed.Milliseconds(),
		)
	}

	slog.Info("move processed",
		"game_id", game.Game.ID,
		"turn", game.Turn,
		"mode", mode.String(),
		"move", action.String(),
		"duration_ms", elapsed.Milliseconds(),
	)

	writeJSON(w, MoveResponse{Move: action.String()})
}

func (s *server) handleEnd(w http.ResponseWriter, r *http.Request) {
	game, err := decodeGame(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome, description := describeGameOutcome(game)
	slog.Info("game ended",
		"game_id", game.Game.ID,
		"turns", game.Turn,
		"outcome", description,
	)

	// replay collection, rendering and archival are best effort and
	// must not hold up the engine
	go s.postGame(game, outcome, description)

	writeJSON(w, map[string]string{})
}

func snakeNames(game *GameRequest) []string {
	names := make([]string, 0, len(game.Board.Snakes))
	for i := range game.Board.Snakes {
		names = append(names, game.Board.Snakes[i].Name)
	}
	return names
}

// GameOutcome is how a finished game ended for us.
type GameOutcome int

const (
	OutcomeUnknown GameOutcome = iota
	GameWon
	GameDrawn
	GameLost
)

// describeGameOutcome classifies the final payload from our
// perspective. The /end payload no longer contains us when we died, so
// absence from the board is the main signal.
func describeGameOutcome(game *GameRequest) (GameOutcome, string) {
	for i := range game.Board.Snakes {
		if game.Board.Snakes[i].ID == game.You.ID {
			if len(game.Board.Snakes) == 1 {
				return GameWon, "won as the last snake standing"
			}
			return OutcomeUnknown, "game ended with several snakes left"
		}
	}

	if len(game.Board.Snakes) == 0 {
		return GameDrawn, "draw, nobody survived"
	}

	head := game.You.Head
	if head.X < 0 || head.X >= game.Board.Width || head.Y < 0 || head.Y >= game.Board.Height {
		return GameLost, "lost by hitting a wall"
	}

	if game.You.Health <= 0 {
		return GameLost, "lost by starving"
	}

	for i := range game.Board.Snakes {
		for _, segment := range game.Board.Snakes[i].Body {
			if head == segment {
				return GameLost, fmt.Sprintf("lost by colliding with %s", game.Board.Snakes[i].Name)
			}
		}
	}

	return GameLost, fmt.Sprintf("lost (winner: %s)", game.Board.Snakes[0].Name)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}
