package game

import (
	"path/filepath"
	"sort"
	"strings"

	"guessr-bot/model"
)

// fakeCatalog is an in-memory CatalogStore for tests.
type fakeCatalog struct {
	songs   []model.Song
	aliases []model.Alias
}

func (c *fakeCatalog) SongByID(id string) (*model.Song, error) {
	for i := range c.songs {
		if strings.EqualFold(c.songs[i].ID, id) {
			return &c.songs[i], nil
		}
	}
	return nil, nil
}

func (c *fakeCatalog) SongByTitle(title string) (*model.Song, error) {
	for i := range c.songs {
		if strings.EqualFold(c.songs[i].Title, title) {
			return &c.songs[i], nil
		}
	}
	return nil, nil
}

func (c *fakeCatalog) SongByAlias(alias string) (*model.Song, error) {
	for _, a := range c.aliases {
		if strings.EqualFold(a.Alias, alias) {
			return c.SongByID(a.SongID)
		}
	}
	return nil, nil
}

func (c *fakeCatalog) AllSongs() ([]model.Song, error) {
	return append([]model.Song(nil), c.songs...), nil
}

// fakeHints serves tokens from a map keyed by song title.
type fakeHints struct {
	tokens  map[string][]string
	artwork map[string]string
}

func (h *fakeHints) ListHintTokens(title string) ([]string, error) {
	return append([]string(nil), h.tokens[title]...), nil
}

func (h *fakeHints) ResolveHintPath(token string) string {
	return filepath.Join("hints", token)
}

func (h *fakeHints) ArtworkPath(songID string) string {
	return h.artwork[songID]
}

// fakeSessions keeps records in a map and can inject store failures.
type fakeSessions struct {
	records   map[string]model.SessionRecord
	upsertErr error
	deleteErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{records: make(map[string]model.SessionRecord)}
}

func (s *fakeSessions) LoadSessions() ([]model.SessionRecord, error) {
	var records []model.SessionRecord
	for _, rec := range s.records {
		records = append(records, rec)
	}
	return records, nil
}

func (s *fakeSessions) UpsertSession(rec model.SessionRecord) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.records[rec.GuildID] = rec
	return nil
}

func (s *fakeSessions) DeleteSession(guildID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.records, guildID)
	return nil
}

// fakeWins aggregates in insertion order, matching the store's
// first-seen tie-break.
type fakeWins struct {
	records []model.WinRecord
}

func (w *fakeWins) AddWin(guildID, winner string, timestamp int64) error {
	w.records = append(w.records, model.WinRecord{
		ID:        int64(len(w.records) + 1),
		GuildID:   guildID,
		Winner:    winner,
		Timestamp: timestamp,
	})
	return nil
}

func (w *fakeWins) Top(guildID string, n int) ([]model.LeaderboardRow, error) {
	counts := make(map[string]int)
	var order []string
	for _, rec := range w.records {
		if rec.GuildID != guildID {
			continue
		}
		if _, seen := counts[rec.Winner]; !seen {
			order = append(order, rec.Winner)
		}
		counts[rec.Winner]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	rows := make([]model.LeaderboardRow, 0, len(order))
	for _, winner := range order {
		rows = append(rows, model.LeaderboardRow{Winner: winner, Wins: counts[winner]})
	}
	return rows, nil
}

// fakeSettings is a map-backed SettingsStore.
type fakeSettings struct {
	enabled map[string]bool
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{enabled: make(map[string]bool)}
}

func (s *fakeSettings) SetEnabled(guildID string, enabled bool) error {
	s.enabled[guildID] = enabled
	return nil
}

func (s *fakeSettings) Enabled(guildID string) (bool, error) {
	return s.enabled[guildID], nil
}
