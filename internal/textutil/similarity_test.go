package textutil

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 100},
		{"one empty", "hello", "", 0},
		{"identical", "machine learning", "machine learning", 100},
		{"disjoint-ish", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioOrderSensitive(t *testing.T) {
	// The greedy matching-block decomposition is order-sensitive, so scores
	// are defined for the (text, phrase) argument order callers use. Both
	// directions are pinned here so a change to the decomposition shows up.
	a := "need a machine learning model"
	b := "looking for someone to build an ml model"
	if got := Ratio(a, b); got != 41 {
		t.Errorf("Ratio(a, b) = %d, want 41", got)
	}
	if got := Ratio(b, a); got != 29 {
		t.Errorf("Ratio(b, a) = %d, want 29", got)
	}
}

func TestRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", ""},
		{"short", "a much longer string with many words in it"},
		{"the quick brown fox", "the quick brown fox jumps"},
	}
	for _, p := range pairs {
		got := Ratio(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Ratio(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestPartialRatioSubstring(t *testing.T) {
	tests := []struct {
		name   string
		needle string
		hay    string
	}{
		{"embedded phrase", "could use ai to automate this", "honestly we could use ai to automate this whole workflow at work"},
		{"prefix", "need machine learning", "need machine learning help for my startup"},
		{"suffix", "ml engineer needed", "urgent: ml engineer needed"},
		{"identical", "build ai model", "build ai model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartialRatio(tt.needle, tt.hay)
			if got != 100 {
				t.Errorf("PartialRatio(%q, %q) = %d, want 100", tt.needle, tt.hay, got)
			}
		})
	}
}

func TestPartialRatioEmpty(t *testing.T) {
	if got := PartialRatio("", "anything"); got != 0 {
		t.Errorf("PartialRatio(empty, non-empty) = %d, want 0", got)
	}
	if got := PartialRatio("", ""); got != 100 {
		t.Errorf("PartialRatio(empty, empty) = %d, want 100", got)
	}
}

func TestPartialRatioOrderIndependent(t *testing.T) {
	a := "need ai developer"
	b := "we need an ai developer for a short contract"
	if PartialRatio(a, b) != PartialRatio(b, a) {
		t.Errorf("PartialRatio argument order changed score: %d vs %d", PartialRatio(a, b), PartialRatio(b, a))
	}
}

func TestPartialRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"abc", "xyz"},
		{"machine learning", "deep frying"},
		{"a", "b"},
	}
	for _, p := range pairs {
		got := PartialRatio(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("PartialRatio(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestTokenSortRatioPermutation(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"two words", "learning machine", "machine learning"},
		{"sentence", "an ai for that would be cool", "would be cool an ai for that"},
		{"extra whitespace", "  build   ai model ", "model ai build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSortRatio(tt.a, tt.b)
			if got != 100 {
				t.Errorf("TokenSortRatio(%q, %q) = %d, want 100", tt.a, tt.b, got)
			}
		})
	}
}

func TestTokenSortRatioDifferentWords(t *testing.T) {
	got := TokenSortRatio("need machine learning", "selling vintage furniture")
	if got >= 70 {
		t.Errorf("TokenSortRatio(unrelated) = %d, want below 70", got)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Need Machine Learning", "need machine learning"},
		{"ÇA VA", "ça va"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MachineLearning", "machinelearning"},
		{"r/startups", "r_startups"},
		{"  ", "unknown"},
		{"small-business", "small-business"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
