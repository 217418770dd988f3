package game

import (
	"encoding/json"
	"fmt"
	"time"

	"guessr-bot/model"
)

// Game is one active round for a guild. At most one exists per guild
// id; terminal outcomes remove it from the registry atomically.
type Game struct {
	Answer      *model.Song
	MaxAttempts int
	Remaining   int
	StartedAt   time.Time
	Guesses     []model.GuessEntry
	HintsUsed   map[string]bool
}

func newGame(answer *model.Song, maxAttempts int) *Game {
	return &Game{
		Answer:      answer,
		MaxAttempts: maxAttempts,
		Remaining:   maxAttempts,
		StartedAt:   time.Now(),
		HintsUsed:   make(map[string]bool),
	}
}

// record flattens the game into its persisted form.
func (g *Game) record(guildID string) (model.SessionRecord, error) {
	guesses, err := json.Marshal(g.Guesses)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("failed to marshal guesses: %w", err)
	}
	hints := make([]string, 0, len(g.HintsUsed))
	for token := range g.HintsUsed {
		hints = append(hints, token)
	}
	hintsJSON, err := json.Marshal(hints)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("failed to marshal hints: %w", err)
	}
	return model.SessionRecord{
		GuildID:       guildID,
		AnswerID:      g.Answer.ID,
		MaxAttempts:   g.MaxAttempts,
		Remaining:     g.Remaining,
		StartedAt:     g.StartedAt.Unix(),
		GuessesJSON:   string(guesses),
		HintsUsedJSON: string(hintsJSON),
	}, nil
}

// gameFromRecord rebuilds an in-memory game. The answer must already
// have been re-resolved against the catalog by the caller.
func gameFromRecord(rec model.SessionRecord, answer *model.Song) (*Game, error) {
	g := &Game{
		Answer:      answer,
		MaxAttempts: rec.MaxAttempts,
		Remaining:   rec.Remaining,
		StartedAt:   time.Unix(rec.StartedAt, 0),
		HintsUsed:   make(map[string]bool),
	}
	if rec.GuessesJSON != "" {
		if err := json.Unmarshal([]byte(rec.GuessesJSON), &g.Guesses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal guesses: %w", err)
		}
	}
	if rec.HintsUsedJSON != "" {
		var hints []string
		if err := json.Unmarshal([]byte(rec.HintsUsedJSON), &hints); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hints: %w", err)
		}
		for _, token := range hints {
			g.HintsUsed[token] = true
		}
	}
	return g, nil
}
