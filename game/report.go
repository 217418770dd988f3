package game

import (
	"fmt"
	"strings"

	"guessr-bot/model"
)

// 对比报告的固定字段顺序。曲师、FTR谱师、曲包是高信息量字段，
// 只在完全一致时进入结尾的"关键项"区，避免提示过度。
type comparedField struct {
	label   string
	value   func(*model.Song) string
	keyItem bool
}

var comparedFields = []comparedField{
	{"曲师", func(s *model.Song) string { return s.Artist }, true},
	{"FTR谱师", func(s *model.Song) string { return s.ChartDesigner }, true},
	{"难度分级", func(s *model.Song) string { return s.Tiers }, false},
	{"语言", func(s *model.Song) string { return s.Locales }, false},
	{"背景", func(s *model.Song) string { return s.Background }, false},
	{"侧", func(s *model.Song) string { return s.Side }, false},
	{"曲包", func(s *model.Song) string { return s.Pack }, true},
}

var directionalFields = []struct {
	label string
	value func(*model.Song) string
}{
	{"FTR难度", func(s *model.Song) string { return s.RatingFTR }},
	{"BYD难度", func(s *model.Song) string { return s.RatingBYD }},
	{"ETR难度", func(s *model.Song) string { return s.RatingETR }},
	{"版本", func(s *model.Song) string { return s.Version }},
}

// BuildReport renders the field-by-field feedback for a wrong but
// non-terminal consumed guess.
func BuildReport(guess, answer *model.Song, remaining int) string {
	output := []string{fmt.Sprintf("❌ 猜错了！剩余尝试次数：%d\n你的猜测：%s", remaining, guess.Title)}
	var keyItems []string

	for _, field := range comparedFields {
		gv := field.value(guess)
		av := field.value(answer)
		if field.keyItem {
			if gv == av {
				keyItems = append(keyItems, fmt.Sprintf("✅%s: %s", field.label, gv))
			}
			continue
		}
		switch {
		case gv == "" && av == "":
			output = append(output, fmt.Sprintf("✅%s: N/A", field.label))
		case gv == "":
			output = append(output, fmt.Sprintf("🚫%s: N/A", field.label))
		case av == "":
			output = append(output, fmt.Sprintf("🚫%s: %s", field.label, gv))
		case gv == av:
			output = append(output, fmt.Sprintf("✅%s: %s", field.label, gv))
		default:
			output = append(output, fmt.Sprintf("❌%s: %s", field.label, gv))
		}
	}

	for _, field := range directionalFields {
		gv := field.value(guess)
		av := field.value(answer)
		order, comparable := CompareRatings(gv, av)
		switch {
		case comparable && order < 0:
			output = append(output, fmt.Sprintf("⬆️%s: %s", field.label, gv))
		case comparable && order > 0:
			output = append(output, fmt.Sprintf("⬇️%s: %s", field.label, gv))
		case comparable && gv == "" && av == "":
			output = append(output, fmt.Sprintf("✅%s: N/A", field.label))
		case comparable:
			output = append(output, fmt.Sprintf("✅%s: %s", field.label, gv))
		default:
			shown := gv
			if shown == "" {
				shown = "N/A"
			}
			output = append(output, fmt.Sprintf("🚫%s: %s", field.label, shown))
		}
	}

	if len(keyItems) > 0 {
		output = append(output, "\n你发现了关键项！")
		output = append(output, keyItems...)
	}

	return strings.Join(output, "\n")
}
