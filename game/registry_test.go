package game

import (
	"errors"
	"strings"
	"testing"

	"guessr-bot/model"
)

const testGuild = "guild-1"

// newTestRegistry wires a registry where "Fracture Ray" is the only
// song with hint assets, so Start always draws it as the answer.
func newTestRegistry() (*Registry, *fakeSessions, *fakeWins) {
	catalog := testCatalog()
	hints := &fakeHints{
		tokens:  map[string][]string{"Fracture Ray": {"Fracture Ray-a-1.png", "Fracture Ray-a-2.png", "Fracture Ray-b-1.png"}},
		artwork: map[string]string{"42": "artwork/dl_42/1080_base_256.jpg"},
	}
	sessions := newFakeSessions()
	wins := &fakeWins{}
	return NewRegistry(catalog, hints, sessions, wins, newFakeSettings()), sessions, wins
}

func TestStartValidatesAttempts(t *testing.T) {
	r, _, _ := newTestRegistry()
	for _, attempts := range []int{0, -1, 21, 100} {
		if _, err := r.Start(testGuild, attempts); !errors.Is(err, ErrInvalidAttempts) {
			t.Errorf("Start with %d attempts: error = %v, want ErrInvalidAttempts", attempts, err)
		}
	}
	for _, attempts := range []int{1, 10, 20} {
		if _, err := r.Start(testGuild, attempts); err != nil {
			t.Errorf("Start with %d attempts: unexpected error %v", attempts, err)
		}
	}
}

func TestStartFailsWithoutHintedCandidate(t *testing.T) {
	catalog := testCatalog()
	r := NewRegistry(catalog, &fakeHints{}, newFakeSessions(), &fakeWins{}, newFakeSettings())
	if _, err := r.Start(testGuild, 10); !errors.Is(err, ErrNoHintAvailable) {
		t.Errorf("Start without hinted songs: error = %v, want ErrNoHintAvailable", err)
	}
	if r.HasActive(testGuild) {
		t.Error("failed Start must not leave an active game")
	}
}

func TestStartPersistsSession(t *testing.T) {
	r, sessions, _ := newTestRegistry()
	reply, err := r.Start(testGuild, 5)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !strings.Contains(reply.Text, "游戏开始") {
		t.Errorf("start reply = %q", reply.Text)
	}
	rec, ok := sessions.records[testGuild]
	if !ok {
		t.Fatal("Start did not persist the session")
	}
	if rec.AnswerID != "42" || rec.MaxAttempts != 5 || rec.Remaining != 5 {
		t.Errorf("persisted record = %+v", rec)
	}
}

func TestStartReplacesActiveGame(t *testing.T) {
	r, _, _ := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	reply, err := r.Start(testGuild, 5)
	if err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if !strings.Contains(reply.Text, "已重新创建游戏") {
		t.Errorf("replacing an active game should be reported, got %q", reply.Text)
	}
}

func TestGuessWithoutGame(t *testing.T) {
	r, _, _ := newTestRegistry()
	if _, err := r.Guess(testGuild, "alice", "Fracture Ray", true); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("Guess without game: error = %v, want ErrNoActiveGame", err)
	}
}

func TestGuessUnresolvedKeepsAttempt(t *testing.T) {
	r, sessions, _ := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := r.Guess(testGuild, "alice", "no such song", true); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("unresolved guess: error = %v, want ErrSongNotFound", err)
	}
	if rec := sessions.records[testGuild]; rec.Remaining != 5 {
		t.Errorf("unresolved guess consumed an attempt: remaining = %d", rec.Remaining)
	}
}

func TestGuessWinRemovesSessionAndRecordsWin(t *testing.T) {
	r, sessions, wins := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	reply, err := r.Guess(testGuild, "alice", "Fracture Ray", true)
	if err != nil {
		t.Fatalf("winning guess failed: %v", err)
	}
	if !strings.Contains(reply.Text, "恭喜 alice 猜对了") {
		t.Errorf("win reply = %q", reply.Text)
	}
	if reply.ImagePath == "" {
		t.Error("win reply should carry the artwork path")
	}
	if r.HasActive(testGuild) {
		t.Error("session must be removed after a win")
	}
	if _, ok := sessions.records[testGuild]; ok {
		t.Error("persisted session must be deleted after a win")
	}
	if len(wins.records) != 1 || wins.records[0].Winner != "alice" {
		t.Errorf("win records = %+v", wins.records)
	}
}

func TestGuessExhaustion(t *testing.T) {
	r, sessions, wins := newTestRegistry()
	if _, err := r.Start(testGuild, 1); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	reply, err := r.Guess(testGuild, "alice", "Grievous Lady", true)
	if err != nil {
		t.Fatalf("exhausting guess failed: %v", err)
	}
	if !strings.Contains(reply.Text, "你已用完所有尝试次数") {
		t.Errorf("exhaustion reply = %q", reply.Text)
	}
	if r.HasActive(testGuild) {
		t.Error("session must be removed after exhaustion")
	}
	if _, ok := sessions.records[testGuild]; ok {
		t.Error("persisted session must be deleted after exhaustion")
	}
	if len(wins.records) != 0 {
		t.Errorf("exhaustion must not touch the leaderboard: %+v", wins.records)
	}
}

func TestGuessWrongReturnsReport(t *testing.T) {
	r, sessions, _ := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	reply, err := r.Guess(testGuild, "alice", "Grievous Lady", true)
	if err != nil {
		t.Fatalf("wrong guess failed: %v", err)
	}
	if !strings.Contains(reply.Text, "剩余尝试次数：4") {
		t.Errorf("report should show the decremented count: %q", reply.Text)
	}
	rec := sessions.records[testGuild]
	if rec.Remaining != 4 {
		t.Errorf("persisted remaining = %d, want 4", rec.Remaining)
	}
	if !strings.Contains(rec.GuessesJSON, "Grievous Lady") {
		t.Errorf("guess log not persisted: %s", rec.GuessesJSON)
	}
}

func TestGuessPersistFailureRestoresState(t *testing.T) {
	r, sessions, _ := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	sessions.upsertErr = errors.New("store unavailable")
	if _, err := r.Guess(testGuild, "alice", "Grievous Lady", true); err == nil {
		t.Fatal("persist failure should surface as an error")
	}
	sessions.upsertErr = nil

	// In-memory state must be untouched: a full set of attempts remains.
	reply, err := r.Guess(testGuild, "alice", "Grievous Lady", true)
	if err != nil {
		t.Fatalf("guess after recovery failed: %v", err)
	}
	if !strings.Contains(reply.Text, "剩余尝试次数：4") {
		t.Errorf("remaining should start from 5 again, got %q", reply.Text)
	}
}

func TestPassiveGuessRepliesOnlyOnWin(t *testing.T) {
	r, sessions, wins := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	reply, err := r.Guess(testGuild, "bob", "Grievous Lady", false)
	if err != nil {
		t.Fatalf("passive wrong guess failed: %v", err)
	}
	if reply != nil {
		t.Errorf("passive wrong guess must stay silent, got %+v", reply)
	}
	if rec := sessions.records[testGuild]; rec.Remaining != 5 {
		t.Errorf("passive guess consumed an attempt: remaining = %d", rec.Remaining)
	}

	reply, err = r.Guess(testGuild, "bob", "Fracture Ray", false)
	if err != nil {
		t.Fatalf("passive winning guess failed: %v", err)
	}
	if reply == nil || !strings.Contains(reply.Text, "恭喜 bob 猜对了") {
		t.Errorf("passive win should reply, got %+v", reply)
	}
	if len(wins.records) != 1 {
		t.Errorf("passive win should be recorded: %+v", wins.records)
	}
}

func TestHintNeverRepeatsAndExhausts(t *testing.T) {
	r, _, _ := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	seen := make(map[string]bool)
	for n := 0; n < 3; n++ {
		reply, err := r.Hint(testGuild)
		if err != nil {
			t.Fatalf("Hint %d failed: %v", n, err)
		}
		if seen[reply.ImagePath] {
			t.Errorf("hint %q dispensed twice", reply.ImagePath)
		}
		seen[reply.ImagePath] = true
	}
	if _, err := r.Hint(testGuild); !errors.Is(err, ErrHintsExhausted) {
		t.Errorf("fourth hint: error = %v, want ErrHintsExhausted", err)
	}
}

func TestStopRevealsAnswer(t *testing.T) {
	r, sessions, _ := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	reply, err := r.Stop(testGuild)
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if !strings.Contains(reply.Text, "Fracture Ray") {
		t.Errorf("stop should reveal the answer: %q", reply.Text)
	}
	if r.HasActive(testGuild) || len(sessions.records) != 0 {
		t.Error("stop must remove the session everywhere")
	}

	reply, err = r.Stop(testGuild)
	if err != nil {
		t.Fatalf("Stop without game failed: %v", err)
	}
	if !strings.Contains(reply.Text, "当前没有进行中的游戏") {
		t.Errorf("stop without game reply = %q", reply.Text)
	}
}

func TestLeaderboardScopedPerGuild(t *testing.T) {
	r, _, wins := newTestRegistry()
	for _, guild := range []string{"guild-a", "guild-b"} {
		if _, err := r.Start(guild, 5); err != nil {
			t.Fatalf("Start in %s failed: %v", guild, err)
		}
		if _, err := r.Guess(guild, "alice", "Fracture Ray", true); err != nil {
			t.Fatalf("win in %s failed: %v", guild, err)
		}
	}
	if len(wins.records) != 2 {
		t.Fatalf("expected 2 win records, got %+v", wins.records)
	}

	reply, err := r.Leaderboard("guild-a", 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if !strings.Contains(reply.Text, "alice: 1") {
		t.Errorf("guild-a leaderboard = %q", reply.Text)
	}
	reply, err = r.Leaderboard("guild-c", 10)
	if err != nil {
		t.Fatalf("Leaderboard for empty guild failed: %v", err)
	}
	if strings.Contains(reply.Text, "alice") {
		t.Errorf("guild-c leaderboard must not include other guilds: %q", reply.Text)
	}
}

func TestLoadRestoresSessionsAndDropsStale(t *testing.T) {
	r, sessions, _ := newTestRegistry()
	if _, err := r.Start(testGuild, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := r.Guess(testGuild, "alice", "Grievous Lady", true); err != nil {
		t.Fatalf("Guess failed: %v", err)
	}
	if _, err := r.Hint(testGuild); err != nil {
		t.Fatalf("Hint failed: %v", err)
	}

	// A session whose answer vanished from the catalog.
	sessions.records["guild-stale"] = model.SessionRecord{
		GuildID: "guild-stale", AnswerID: "gone", MaxAttempts: 5, Remaining: 5,
	}

	fresh := NewRegistry(testCatalog(), &fakeHints{
		tokens: map[string][]string{"Fracture Ray": {"Fracture Ray-a-1.png"}},
	}, sessions, &fakeWins{}, newFakeSettings())
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if fresh.HasActive("guild-stale") {
		t.Error("stale session must be dropped on load")
	}
	if _, ok := sessions.records["guild-stale"]; ok {
		t.Error("stale session must be deleted from storage")
	}

	g := fresh.getGame(testGuild)
	if g == nil {
		t.Fatal("session was not restored")
	}
	if g.Answer.ID != "42" {
		t.Errorf("restored answer = %s, want 42", g.Answer.ID)
	}
	if g.Remaining != 4 || g.MaxAttempts != 5 {
		t.Errorf("restored attempts = %d/%d, want 4/5", g.Remaining, g.MaxAttempts)
	}
	if len(g.HintsUsed) != 1 {
		t.Errorf("restored hint set = %v, want 1 entry", g.HintsUsed)
	}
	if len(g.Guesses) != 1 || g.Guesses[0].User != "alice" {
		t.Errorf("restored guess log = %+v", g.Guesses)
	}
}

func TestSetEnabledDefaultsToDisabled(t *testing.T) {
	r, _, _ := newTestRegistry()
	enabled, err := r.Enabled(testGuild)
	if err != nil {
		t.Fatalf("Enabled failed: %v", err)
	}
	if enabled {
		t.Error("guilds must default to disabled")
	}
	if err := r.SetEnabled(testGuild, true); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	if enabled, _ := r.Enabled(testGuild); !enabled {
		t.Error("SetEnabled(true) did not stick")
	}
}
