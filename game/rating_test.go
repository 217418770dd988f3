package game

import "testing"

func TestParseRating(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		present bool
	}{
		{"", 0, false},
		{"9", 9, true},
		{"9+", 9.5, true},
		{"10", 10, true},
		{"11+", 11.5, true},
		{"?", 0, true},
		{"5.5", 5.5, true},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseRating(tt.in)
		if ok != tt.present {
			t.Errorf("ParseRating(%q) present = %v, want %v", tt.in, ok, tt.present)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseRating(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompareRatingsOrdering(t *testing.T) {
	// "9" < "9+" < "10"
	if order, ok := CompareRatings("9", "9+"); !ok || order != -1 {
		t.Errorf("CompareRatings(9, 9+) = %d, %v; want -1, true", order, ok)
	}
	if order, ok := CompareRatings("9+", "10"); !ok || order != -1 {
		t.Errorf("CompareRatings(9+, 10) = %d, %v; want -1, true", order, ok)
	}
	if order, ok := CompareRatings("10", "9"); !ok || order != 1 {
		t.Errorf("CompareRatings(10, 9) = %d, %v; want 1, true", order, ok)
	}
	if order, ok := CompareRatings("9+", "9+"); !ok || order != 0 {
		t.Errorf("CompareRatings(9+, 9+) = %d, %v; want 0, true", order, ok)
	}
}

func TestCompareRatingsUnknownIsLowest(t *testing.T) {
	if order, ok := CompareRatings("?", "1"); !ok || order != -1 {
		t.Errorf("CompareRatings(?, 1) = %d, %v; want -1, true", order, ok)
	}
}

func TestCompareRatingsAbsent(t *testing.T) {
	if order, ok := CompareRatings("", ""); !ok || order != 0 {
		t.Errorf("two absent ratings should compare equal, got %d, %v", order, ok)
	}
	if _, ok := CompareRatings("", "9"); ok {
		t.Error("absent vs present should not be comparable")
	}
	if _, ok := CompareRatings("9", ""); ok {
		t.Error("present vs absent should not be comparable")
	}
}
