package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"guessr-bot/model"
)

// CatalogDB implements the read side of the song catalog plus the
// truncate-and-reload write path used by the ingestion pipeline.
type CatalogDB struct {
	db *sqlx.DB
}

func NewCatalogDB(db *sqlx.DB) *CatalogDB {
	return &CatalogDB{db: db}
}

func (c *CatalogDB) SongByID(id string) (*model.Song, error) {
	var song model.Song
	err := c.db.Get(&song, "SELECT * FROM songs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song by id %s: %w", id, err)
	}
	return &song, nil
}

func (c *CatalogDB) SongByTitle(title string) (*model.Song, error) {
	var song model.Song
	err := c.db.Get(&song, "SELECT * FROM songs WHERE LOWER(title) = LOWER(?) LIMIT 1", title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song by title %q: %w", title, err)
	}
	return &song, nil
}

func (c *CatalogDB) SongByAlias(alias string) (*model.Song, error) {
	var song model.Song
	query := `SELECT s.* FROM songs s
		JOIN aliases a ON a.song_id = s.id
		WHERE LOWER(a.alias) = LOWER(?) LIMIT 1`
	err := c.db.Get(&song, query, alias)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song by alias %q: %w", alias, err)
	}
	return &song, nil
}

func (c *CatalogDB) AllSongs() ([]model.Song, error) {
	var songs []model.Song
	if err := c.db.Select(&songs, "SELECT * FROM songs ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// ContentHash returns the hash of the last ingested songlist, or ""
// when the catalog has never been loaded.
func (c *CatalogDB) ContentHash() (string, error) {
	var hash string
	err := c.db.Get(&hash, "SELECT value FROM catalog_meta WHERE key = 'songlist_hash'")
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read catalog hash: %w", err)
	}
	return hash, nil
}

// Replace swaps the whole catalog for a freshly ingested one inside a
// single transaction and stores the new content hash.
func (c *CatalogDB) Replace(songs []model.Song, aliases []model.Alias, hash string) error {
	tx, err := c.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %w", err)
	}

	for _, stmt := range []string{"DELETE FROM songs", "DELETE FROM aliases"} {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	insertSong := `INSERT INTO songs (id, title, artist, pack, chart_designer, tiers, locales, side, background, version, rating_ftr, rating_byd, rating_etr)
		VALUES (:id, :title, :artist, :pack, :chart_designer, :tiers, :locales, :side, :background, :version, :rating_ftr, :rating_byd, :rating_etr)`
	for _, song := range songs {
		if _, err := tx.NamedExec(insertSong, song); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert song %s: %w", song.ID, err)
		}
	}

	insertAlias := `INSERT INTO aliases (song_id, alias) VALUES (:song_id, :alias)`
	for _, alias := range aliases {
		if _, err := tx.NamedExec(insertAlias, alias); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert alias %q: %w", alias.Alias, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO catalog_meta (key, value) VALUES ('songlist_hash', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, hash); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to store catalog hash: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of catalog songs, for the status embed.
func (c *CatalogDB) Count() (int, error) {
	var count int
	if err := c.db.Get(&count, "SELECT COUNT(*) FROM songs"); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}
