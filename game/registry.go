package game

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"guessr-bot/model"
)

// SessionStore persists active games. Each upsert/delete must be a
// single atomic write; there are no cross-table transactions.
type SessionStore interface {
	LoadSessions() ([]model.SessionRecord, error)
	UpsertSession(rec model.SessionRecord) error
	DeleteSession(guildID string) error
}

// LeaderboardStore records wins append-only and aggregates on read.
type LeaderboardStore interface {
	AddWin(guildID, winner string, timestamp int64) error
	Top(guildID string, n int) ([]model.LeaderboardRow, error)
}

// SettingsStore holds the per-guild enable flag.
type SettingsStore interface {
	SetEnabled(guildID string, enabled bool) error
	Enabled(guildID string) (bool, error)
}

// Reply is what an operation hands back to the chat layer: a text
// message and an optional local image to attach.
type Reply struct {
	Text      string
	ImagePath string
}

const candidateDraws = 100

// Registry owns every active game keyed by guild id and serializes
// operations per guild so a consumed attempt is decremented, persisted
// and evaluated as one unit. Catalog reads stay concurrent.
type Registry struct {
	catalog  CatalogStore
	resolver *Resolver
	hints    HintAssetProvider
	sessions SessionStore
	wins     LeaderboardStore
	settings SettingsStore

	mu    sync.Mutex
	games map[string]*Game
	locks map[string]*sync.Mutex
}

func NewRegistry(catalog CatalogStore, hints HintAssetProvider, sessions SessionStore, wins LeaderboardStore, settings SettingsStore) *Registry {
	return &Registry{
		catalog:  catalog,
		resolver: NewResolver(catalog),
		hints:    hints,
		sessions: sessions,
		wins:     wins,
		settings: settings,
		games:    make(map[string]*Game),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (r *Registry) guildLock(guildID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[guildID] = lock
	}
	return lock
}

func (r *Registry) getGame(guildID string) *Game {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.games[guildID]
}

func (r *Registry) setGame(guildID string, g *Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g == nil {
		delete(r.games, guildID)
	} else {
		r.games[guildID] = g
	}
}

// Load rebuilds active games from storage on process start. A record
// whose answer no longer resolves against the catalog is dropped: the
// catalog changed underneath it.
func (r *Registry) Load() error {
	records, err := r.sessions.LoadSessions()
	if err != nil {
		return fmt.Errorf("failed to load persisted sessions: %w", err)
	}
	restored := 0
	for _, rec := range records {
		answer, err := r.catalog.SongByID(rec.AnswerID)
		if err != nil {
			return fmt.Errorf("failed to re-resolve answer %s: %w", rec.AnswerID, err)
		}
		if answer == nil {
			log.Printf("Dropping session for guild %s: answer %s no longer in catalog", rec.GuildID, rec.AnswerID)
			if err := r.sessions.DeleteSession(rec.GuildID); err != nil {
				log.Printf("Failed to delete stale session for guild %s: %v", rec.GuildID, err)
			}
			continue
		}
		g, err := gameFromRecord(rec, answer)
		if err != nil {
			log.Printf("Dropping corrupt session for guild %s: %v", rec.GuildID, err)
			if err := r.sessions.DeleteSession(rec.GuildID); err != nil {
				log.Printf("Failed to delete corrupt session for guild %s: %v", rec.GuildID, err)
			}
			continue
		}
		r.setGame(rec.GuildID, g)
		restored++
	}
	if restored > 0 {
		log.Printf("Restored %d active game(s) from storage", restored)
	}
	return nil
}

// Start draws a secret song and opens a new round, replacing any
// round already active for the guild. The draw retries a bounded
// number of times to find a candidate with at least one hint asset.
func (r *Registry) Start(guildID string, maxAttempts int) (*Reply, error) {
	if maxAttempts < 1 || maxAttempts > 20 {
		return nil, ErrInvalidAttempts
	}

	lock := r.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	songs, err := r.catalog.AllSongs()
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(songs) == 0 {
		return nil, ErrNoHintAvailable
	}

	var answer *model.Song
	for i := 0; i < candidateDraws; i++ {
		candidate := &songs[rand.Intn(len(songs))]
		tokens, err := r.hints.ListHintTokens(candidate.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to list hint assets: %w", err)
		}
		if len(tokens) > 0 {
			answer = candidate
			break
		}
	}
	if answer == nil {
		return nil, ErrNoHintAvailable
	}

	recreated := r.getGame(guildID) != nil

	g := newGame(answer, maxAttempts)
	rec, err := g.record(guildID)
	if err != nil {
		return nil, err
	}
	if err := r.sessions.UpsertSession(rec); err != nil {
		return nil, fmt.Errorf("failed to persist new game: %w", err)
	}
	r.setGame(guildID, g)

	// 方便管理员在后台对答案，和玩家不可见。
	log.Printf("Game started in guild %s, answer: %s", guildID, answer.Title)

	prefix := ""
	if recreated {
		prefix = "已重新创建游戏，"
	}
	text := fmt.Sprintf(
		"%s游戏开始！请在%d次尝试内猜出曲目！\n优先级：ID完全匹配＞曲名完全匹配＞俗名＞模糊匹配\n输入 /guessr tip 可以获取提示。一局建议使用两次以内。",
		prefix, maxAttempts)
	return &Reply{Text: text}, nil
}

// Guess submits one guess. A failed resolution never costs an attempt.
// With consume set, the attempt is decremented and persisted before
// the outcome is evaluated, so a crash cannot hand the attempt back.
// Without consume (ambient message matching) only a win produces a
// reply.
func (r *Registry) Guess(guildID, user, text string, consume bool) (*Reply, error) {
	lock := r.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	g := r.getGame(guildID)
	if g == nil {
		return nil, ErrNoActiveGame
	}

	song, err := r.resolver.Resolve(text)
	if err != nil {
		return nil, err
	}

	prevRemaining := g.Remaining
	prevGuesses := len(g.Guesses)
	if consume && g.Remaining > 0 {
		g.Remaining--
	}
	g.Guesses = append(g.Guesses, model.GuessEntry{User: user, SongID: song.ID, Title: song.Title})

	rec, err := g.record(guildID)
	if err == nil {
		err = r.sessions.UpsertSession(rec)
	}
	if err != nil {
		g.Remaining = prevRemaining
		g.Guesses = g.Guesses[:prevGuesses]
		return nil, fmt.Errorf("failed to persist guess: %w", err)
	}

	if song.ID == g.Answer.ID {
		if err := r.sessions.DeleteSession(guildID); err != nil {
			return nil, fmt.Errorf("failed to close finished game: %w", err)
		}
		r.setGame(guildID, nil)
		if err := r.wins.AddWin(guildID, user, time.Now().Unix()); err != nil {
			log.Printf("Failed to record win for %s in guild %s: %v", user, guildID, err)
		}
		return &Reply{
			Text:      fmt.Sprintf("恭喜 %s 猜对了！正确答案是：%s", user, g.Answer.Title),
			ImagePath: r.hints.ArtworkPath(g.Answer.ID),
		}, nil
	}

	if consume && g.Remaining == 0 {
		if err := r.sessions.DeleteSession(guildID); err != nil {
			return nil, fmt.Errorf("failed to close exhausted game: %w", err)
		}
		r.setGame(guildID, nil)
		return &Reply{
			Text:      fmt.Sprintf("游戏结束！你已用完所有尝试次数。正确答案是：%s", g.Answer.Title),
			ImagePath: r.hints.ArtworkPath(g.Answer.ID),
		}, nil
	}

	if consume {
		return &Reply{Text: BuildReport(song, g.Answer, g.Remaining)}, nil
	}
	return nil, nil
}

// Hint dispenses one not-yet-used hint asset for the answer, chosen
// uniformly at random. Tokens never repeat within a game.
func (r *Registry) Hint(guildID string) (*Reply, error) {
	lock := r.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	g := r.getGame(guildID)
	if g == nil {
		return nil, ErrNoActiveGame
	}

	tokens, err := r.hints.ListHintTokens(g.Answer.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to list hint assets: %w", err)
	}
	var available []string
	for _, token := range tokens {
		if !g.HintsUsed[token] {
			available = append(available, token)
		}
	}
	if len(available) == 0 {
		return nil, ErrHintsExhausted
	}

	choice := available[rand.Intn(len(available))]
	g.HintsUsed[choice] = true

	rec, err := g.record(guildID)
	if err == nil {
		err = r.sessions.UpsertSession(rec)
	}
	if err != nil {
		delete(g.HintsUsed, choice)
		return nil, fmt.Errorf("failed to persist hint: %w", err)
	}

	return &Reply{
		Text:      fmt.Sprintf("提示还剩 %d 条", len(tokens)-len(g.HintsUsed)),
		ImagePath: r.hints.ResolveHintPath(choice),
	}, nil
}

// Stop ends the round unconditionally and reveals the answer. Stopping
// with no active round is a no-op success.
func (r *Registry) Stop(guildID string) (*Reply, error) {
	lock := r.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	g := r.getGame(guildID)
	if g == nil {
		return &Reply{Text: "当前没有进行中的游戏"}, nil
	}
	if err := r.sessions.DeleteSession(guildID); err != nil {
		return nil, fmt.Errorf("failed to delete stopped game: %w", err)
	}
	r.setGame(guildID, nil)
	return &Reply{
		Text:      fmt.Sprintf("游戏结束！正确答案是：%s", g.Answer.Title),
		ImagePath: r.hints.ArtworkPath(g.Answer.ID),
	}, nil
}

// HasActive reports whether a round is running for the guild. Used by
// the ambient message path to skip resolving every chat line.
func (r *Registry) HasActive(guildID string) bool {
	return r.getGame(guildID) != nil
}

// ActiveCount reports how many games are currently running.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// Leaderboard renders the top-N winners for a guild, ordered by win
// count with first-seen winners breaking ties.
func (r *Registry) Leaderboard(guildID string, n int) (*Reply, error) {
	rows, err := r.wins.Top(guildID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	lines := []string{"冠军榜:"}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s: %d", row.Winner, row.Wins))
	}
	return &Reply{Text: strings.Join(lines, "\n")}, nil
}

// SetEnabled flips the per-guild game switch. The caller is expected
// to have already performed the admin check.
func (r *Registry) SetEnabled(guildID string, enabled bool) error {
	if err := r.settings.SetEnabled(guildID, enabled); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}
	return nil
}

// Enabled reports whether guessing commands are honored for the guild.
// Guilds with no stored settings default to disabled.
func (r *Registry) Enabled(guildID string) (bool, error) {
	enabled, err := r.settings.Enabled(guildID)
	if err != nil {
		return false, fmt.Errorf("failed to read guild settings: %w", err)
	}
	return enabled, nil
}
