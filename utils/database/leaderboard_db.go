package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"guessr-bot/model"
)

// LeaderboardDB is an append-only win log aggregated on read.
type LeaderboardDB struct {
	db *sqlx.DB
}

func NewLeaderboardDB(db *sqlx.DB) *LeaderboardDB {
	return &LeaderboardDB{db: db}
}

func (l *LeaderboardDB) AddWin(guildID, winner string, timestamp int64) error {
	query := "INSERT INTO winners (guild_id, winner, timestamp) VALUES (?, ?, ?)"
	if _, err := l.db.Exec(query, guildID, winner, timestamp); err != nil {
		return fmt.Errorf("failed to record win for %s in guild %s: %w", winner, guildID, err)
	}
	return nil
}

// Top aggregates wins per winner for one guild, ordered by count
// descending. Ties break on the winner's first recorded win, so the
// earlier winner keeps the higher spot.
func (l *LeaderboardDB) Top(guildID string, n int) ([]model.LeaderboardRow, error) {
	var rows []model.LeaderboardRow
	query := `SELECT winner, COUNT(*) AS wins FROM winners
		WHERE guild_id = ?
		GROUP BY winner
		ORDER BY wins DESC, MIN(id) ASC
		LIMIT ?`
	if err := l.db.Select(&rows, query, guildID, n); err != nil {
		return nil, fmt.Errorf("failed to aggregate leaderboard for guild %s: %w", guildID, err)
	}
	return rows, nil
}
