package game

import (
	"fmt"
	"regexp"
	"strings"

	"guessr-bot/model"
)

// CatalogStore is the read side of the song catalog. Implementations
// must be safe for concurrent reads; all lookups are pure.
type CatalogStore interface {
	SongByID(id string) (*model.Song, error)
	SongByTitle(title string) (*model.Song, error)
	SongByAlias(alias string) (*model.Song, error)
	AllSongs() ([]model.Song, error)
}

var whitespace = regexp.MustCompile(`\s+`)

// Resolver maps free-text guesses to catalog songs.
type Resolver struct {
	catalog CatalogStore
}

func NewResolver(catalog CatalogStore) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve applies the matching tiers in strict priority order, stopping
// at the first hit: exact ID, exact title, exact alias, then substring
// containment with whitespace stripped. Title and alias matches are
// case-insensitive full-string comparisons. The fuzzy tier picks the
// first match in catalog order; it is a forgiving fallback, not a
// ranked search. Returns ErrSongNotFound when no tier matches.
func (r *Resolver) Resolve(text string) (*model.Song, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, ErrSongNotFound
	}

	song, err := r.catalog.SongByID(strings.ToLower(query))
	if err != nil {
		return nil, fmt.Errorf("resolve by id: %w", err)
	}
	if song != nil {
		return song, nil
	}

	song, err = r.catalog.SongByTitle(query)
	if err != nil {
		return nil, fmt.Errorf("resolve by title: %w", err)
	}
	if song != nil {
		return song, nil
	}

	song, err = r.catalog.SongByAlias(query)
	if err != nil {
		return nil, fmt.Errorf("resolve by alias: %w", err)
	}
	if song != nil {
		return song, nil
	}

	songs, err := r.catalog.AllSongs()
	if err != nil {
		return nil, fmt.Errorf("resolve fuzzy: %w", err)
	}
	needle := strings.ToLower(whitespace.ReplaceAllString(query, ""))
	for i := range songs {
		title := strings.ToLower(whitespace.ReplaceAllString(songs[i].Title, ""))
		if strings.Contains(title, needle) {
			return &songs[i], nil
		}
	}

	return nil, ErrSongNotFound
}
