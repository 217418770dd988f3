package game

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// HintAssetProvider locates clue assets for a song. Tokens are opaque
// identifiers; the directory implementation uses the file name itself.
type HintAssetProvider interface {
	// ListHintTokens returns every hint token available for a song title.
	ListHintTokens(title string) ([]string, error)
	// ResolveHintPath maps a dispensed token back to a sendable file path.
	ResolveHintPath(token string) string
	// ArtworkPath returns the cover image path for a song, or "" if none.
	ArtworkPath(songID string) string
}

// DirProvider 按命名约定扫描本地目录：提示图为 <曲名>-(a|b)-<序号>.png，
// 曲绘为 dl_<id>/1080_base_256.jpg。
type DirProvider struct {
	HintDir    string
	ArtworkDir string
}

func NewDirProvider(hintDir, artworkDir string) *DirProvider {
	return &DirProvider{HintDir: hintDir, ArtworkDir: artworkDir}
}

func (p *DirProvider) ListHintTokens(title string) ([]string, error) {
	entries, err := os.ReadDir(p.HintDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan hint directory: %w", err)
	}
	pattern, err := regexp.Compile(`^` + regexp.QuoteMeta(title) + `-(a|b)-\d+\.png$`)
	if err != nil {
		return nil, fmt.Errorf("failed to build hint pattern for %q: %w", title, err)
	}
	var tokens []string
	for _, entry := range entries {
		if !entry.IsDir() && pattern.MatchString(entry.Name()) {
			tokens = append(tokens, entry.Name())
		}
	}
	return tokens, nil
}

func (p *DirProvider) ResolveHintPath(token string) string {
	return filepath.Join(p.HintDir, token)
}

func (p *DirProvider) ArtworkPath(songID string) string {
	path := filepath.Join(p.ArtworkDir, "dl_"+songID, "1080_base_256.jpg")
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return ""
	}
	return path
}
