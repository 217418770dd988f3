package game

import (
	"strings"
	"testing"

	"guessr-bot/model"
)

func reportSongs() (*model.Song, *model.Song) {
	guess := &model.Song{
		ID: "g", Title: "Guessed Song",
		Artist: "Same Artist", ChartDesigner: "Designer A", Pack: "Pack A",
		Tiers: "PST PRS FTR", Locales: "en ja", Background: "bg_a", Side: "光芒侧",
		RatingFTR: "9", RatingBYD: "", RatingETR: "10",
		Version: "2.0",
	}
	answer := &model.Song{
		ID: "a", Title: "Answer Song",
		Artist: "Same Artist", ChartDesigner: "Designer B", Pack: "Pack B",
		Tiers: "PST PRS FTR", Locales: "en", Background: "bg_a", Side: "纷争侧",
		RatingFTR: "9+", RatingBYD: "", RatingETR: "",
		Version: "1.0",
	}
	return guess, answer
}

func TestBuildReportFieldLines(t *testing.T) {
	guess, answer := reportSongs()
	report := BuildReport(guess, answer, 3)
	lines := strings.Split(report, "\n")

	want := []string{
		"❌ 猜错了！剩余尝试次数：3",
		"你的猜测：Guessed Song",
		"✅难度分级: PST PRS FTR",
		"❌语言: en ja",
		"✅背景: bg_a",
		"❌侧: 光芒侧",
		"⬆️FTR难度: 9",  // 9 < 9+
		"✅BYD难度: N/A", // both absent
		"🚫ETR难度: 10",  // answer has no ETR chart
		"⬇️版本: 2.0",
	}
	if len(lines) < len(want) {
		t.Fatalf("report has %d lines, want at least %d:\n%s", len(lines), len(want), report)
	}
	for idx, line := range want {
		if lines[idx] != line {
			t.Errorf("line %d = %q, want %q", idx, lines[idx], line)
		}
	}
}

func TestBuildReportKeyItemsOnlyOnMatch(t *testing.T) {
	guess, answer := reportSongs()
	report := BuildReport(guess, answer, 3)

	if !strings.Contains(report, "你发现了关键项！") {
		t.Fatalf("report missing key items section:\n%s", report)
	}
	if !strings.Contains(report, "✅曲师: Same Artist") {
		t.Errorf("matching artist should be revealed as a key item:\n%s", report)
	}
	// Mismatched key fields must not leak anywhere in the report.
	if strings.Contains(report, "FTR谱师") {
		t.Errorf("mismatched chart designer must not appear:\n%s", report)
	}
	if strings.Contains(report, "❌曲师") || strings.Contains(report, "Designer B") {
		t.Errorf("key fields must never appear as mismatch lines:\n%s", report)
	}
	if strings.Contains(report, "Pack A") || strings.Contains(report, "Pack B") {
		t.Errorf("mismatched pack must not appear:\n%s", report)
	}
}

func TestBuildReportNoKeyItemsSectionWhenEmpty(t *testing.T) {
	guess, answer := reportSongs()
	guess.Artist = "Different Artist"
	report := BuildReport(guess, answer, 1)
	if strings.Contains(report, "你发现了关键项！") {
		t.Errorf("no key item matched, section should be absent:\n%s", report)
	}
}

func TestBuildReportMissingFieldMarkers(t *testing.T) {
	guess, answer := reportSongs()
	guess.Background = ""
	answer.Background = ""
	guess.Locales = ""
	report := BuildReport(guess, answer, 2)

	if !strings.Contains(report, "✅背景: N/A") {
		t.Errorf("both-absent field should render as matching N/A:\n%s", report)
	}
	if !strings.Contains(report, "🚫语言: N/A") {
		t.Errorf("guessed-absent field should render as unknown N/A:\n%s", report)
	}
}
