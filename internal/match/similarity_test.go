package match

import "testing"

func TestSimilarity(t *testing.T) {
	t.Run("Identical Strings", func(t *testing.T) {
		if got := Similarity("Song Title", "Song Title"); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("Identical After Normalization", func(t *testing.T) {
		if got := Similarity("Song Title (Official Video)", "song title"); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if got := Similarity("", "x"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		if got := Similarity("x", ""); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("Symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"Song Title", "Song Titles"},
			{"Daft Punk", "Daft Punk Tribute Band"},
			{"completely", "different"},
		}
		for _, p := range pairs {
			ab := Similarity(p[0], p[1])
			ba := Similarity(p[1], p[0])
			if ab != ba {
				t.Errorf("Similarity(%q, %q)=%d != Similarity(%q, %q)=%d", p[0], p[1], ab, p[1], p[0], ba)
			}
		}
	})

	t.Run("Bounded", func(t *testing.T) {
		pairs := [][2]string{
			{"a", "completely unrelated string of words"},
			{"abc", "xyz"},
			{"one", "two"},
		}
		for _, p := range pairs {
			got := Similarity(p[0], p[1])
			if got < 0 || got > 100 {
				t.Errorf("Similarity(%q, %q) = %d outside [0,100]", p[0], p[1], got)
			}
		}
	})

	t.Run("Single Edit", func(t *testing.T) {
		// One substitution across ten characters: round(9/10 * 100) = 90.
		if got := Similarity("aaaaaaaaaa", "aaaaaaaaab"); got != 90 {
			t.Errorf("expected 90, got %d", got)
		}
	})
}

func TestLevenshtein(t *testing.T) {
	tc := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}

	for _, tt := range tc {
		got := levenshtein([]rune(tt.a), []rune(tt.b))
		if got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
