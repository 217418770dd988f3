package ingest

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"

	"guessr-bot/model"
	"guessr-bot/utils"
)

// CatalogWriter is the write side of the catalog store.
type CatalogWriter interface {
	ContentHash() (string, error)
	Replace(songs []model.Song, aliases []model.Alias, hash string) error
}

// songlist mirrors the upstream songlist JSON layout.
type songlist struct {
	Songs []songEntry `json:"songs"`
}

type songEntry struct {
	ID             string            `json:"id"`
	TitleLocalized map[string]string `json:"title_localized"`
	Set            string            `json:"set"`
	Artist         string            `json:"artist"`
	Side           int               `json:"side"`
	BG             string            `json:"bg"`
	Version        string            `json:"version"`
	Difficulties   []difficultyEntry `json:"difficulties"`
}

type difficultyEntry struct {
	RatingClass   int    `json:"ratingClass"`
	Rating        int    `json:"rating"`
	RatingPlus    bool   `json:"ratingPlus"`
	ChartDesigner string `json:"chartDesigner"`
}

var tierLabels = map[int]string{0: "PST", 1: "PRS", 2: "FTR", 3: "BYD", 4: "ETR"}

var sideLabels = map[int]string{0: "光芒侧", 1: "纷争侧", 2: "消色之侧", 3: "Lephon侧"}

// Refresh fetches the songlist and alias CSV and reloads the catalog
// when the songlist content changed since the last run. Individual
// malformed songs are logged and skipped, never aborting the load.
func Refresh(store CatalogWriter, songlistURL, aliasCSVURL string) error {
	body, err := fetch(songlistURL)
	if err != nil {
		return fmt.Errorf("failed to fetch songlist: %w", err)
	}

	sum := sha256.Sum256(body)
	hash := hex.EncodeToString(sum[:])
	stored, err := store.ContentHash()
	if err != nil {
		return err
	}
	if stored == hash {
		log.Println("Catalog unchanged, skipping reload")
		return nil
	}

	var list songlist
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("failed to parse songlist: %w", err)
	}

	songs := make([]model.Song, 0, len(list.Songs))
	ids := make(map[string]bool)
	for _, entry := range list.Songs {
		song, err := convert(entry)
		if err != nil {
			log.Printf("Skipping song %s: %v", entry.ID, err)
			continue
		}
		songs = append(songs, song)
		ids[song.ID] = true
	}
	if len(songs) == 0 {
		return fmt.Errorf("songlist contained no usable songs")
	}

	aliases, err := fetchAliases(aliasCSVURL, ids)
	if err != nil {
		// 别名表缺失不致命，只影响俗名匹配。
		log.Printf("Failed to fetch aliases, keeping catalog reload without them: %v", err)
		aliases = nil
	}

	if err := store.Replace(songs, aliases, hash); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}
	log.Printf("Catalog reloaded: %d songs, %d aliases", len(songs), len(aliases))
	return nil
}

func convert(entry songEntry) (model.Song, error) {
	if entry.ID == "" {
		return model.Song{}, fmt.Errorf("missing id")
	}
	if len(entry.TitleLocalized) == 0 || entry.TitleLocalized["en"] == "" {
		return model.Song{}, fmt.Errorf("missing localized title")
	}

	locales := make([]string, 0, len(entry.TitleLocalized))
	for locale := range entry.TitleLocalized {
		locales = append(locales, locale)
	}
	// Sorted so the same locale set always renders identically.
	sort.Strings(locales)

	var tiers []string
	song := model.Song{
		ID:      entry.ID,
		Title:   entry.TitleLocalized["en"],
		Artist:  entry.Artist,
		Pack:    entry.Set,
		Side:    sideLabels[entry.Side],
		Locales: strings.Join(locales, " "),

		Background: entry.BG,
		Version:    entry.Version,
	}
	for _, diff := range entry.Difficulties {
		label, ok := tierLabels[diff.RatingClass]
		if !ok {
			continue
		}
		tiers = append(tiers, label)
		rating := ratingString(diff)
		switch diff.RatingClass {
		case 2:
			song.RatingFTR = rating
			song.ChartDesigner = diff.ChartDesigner
		case 3:
			song.RatingBYD = rating
		case 4:
			song.RatingETR = rating
		}
	}
	song.Tiers = strings.Join(tiers, " ")
	return song, nil
}

func ratingString(diff difficultyEntry) string {
	if diff.RatingPlus {
		return fmt.Sprintf("%d+", diff.Rating)
	}
	return fmt.Sprintf("%d", diff.Rating)
}

// fetchAliases downloads the community alias CSV. Column 1 is the song
// id and column 3 the alias text; rows referencing unknown songs are
// dropped.
func fetchAliases(url string, knownIDs map[string]bool) ([]model.Alias, error) {
	body, err := fetch(url)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1
	var aliases []model.Alias
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Skipping malformed alias row: %v", err)
			continue
		}
		if len(row) <= 3 {
			continue
		}
		songID, alias := row[1], row[3]
		if alias == "" || !knownIDs[songID] {
			continue
		}
		aliases = append(aliases, model.Alias{SongID: songID, Alias: alias})
	}
	return aliases, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := utils.GlobalHTTPClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
