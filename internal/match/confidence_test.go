package match

import "testing"

func TestCompareTitles(t *testing.T) {
	scorer := NewScorer()

	t.Run("Exact Match", func(t *testing.T) {
		if got := scorer.CompareTitles("Song", "Song"); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("Substring Boost", func(t *testing.T) {
		got := scorer.CompareTitles("Song", "Song (Extended Mix)")
		if got < 85 {
			t.Errorf("expected at least 85 for substring variant, got %d", got)
		}
	})

	t.Run("Unrelated Titles", func(t *testing.T) {
		got := scorer.CompareTitles("Bohemian Rhapsody", "Smells Like Teen Spirit")
		if got >= 85 {
			t.Errorf("expected low score for unrelated titles, got %d", got)
		}
	})
}

func TestCompareArtists(t *testing.T) {
	scorer := NewScorer()

	t.Run("No Query Artist", func(t *testing.T) {
		if got := scorer.CompareArtists("", []string{"Queen"}); got != 50 {
			t.Errorf("expected neutral 50, got %d", got)
		}
	})

	t.Run("No Candidate Artists", func(t *testing.T) {
		if got := scorer.CompareArtists("Queen", nil); got != 50 {
			t.Errorf("expected neutral 50, got %d", got)
		}
	})

	t.Run("Exact Match", func(t *testing.T) {
		if got := scorer.CompareArtists("Queen", []string{"Queen"}); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("Best Across Candidates", func(t *testing.T) {
		got := scorer.CompareArtists("Queen", []string{"Nobody", "Queen", "Someone"})
		if got != 100 {
			t.Errorf("expected best candidate to win with 100, got %d", got)
		}
	})

	t.Run("Substring Boost", func(t *testing.T) {
		got := scorer.CompareArtists("Tiesto", []string{"Tiesto & Friends Orchestra"})
		if got < 80 {
			t.Errorf("expected at least 80 for containing artist, got %d", got)
		}
	})
}

func TestCalculate(t *testing.T) {
	scorer := NewScorer()

	t.Run("Perfect Match", func(t *testing.T) {
		score := scorer.Calculate("Song", "Artist", "Song", []string{"Artist"})
		if score.Score != 100 {
			t.Errorf("expected 100, got %d", score.Score)
		}
		if score.Level != LevelHigh {
			t.Errorf("expected high level, got %s", score.Level)
		}
		if score.TitleScore != 100 || score.ArtistScore != 100 {
			t.Errorf("expected component scores 100/100, got %d/%d", score.TitleScore, score.ArtistScore)
		}
	})

	t.Run("Weighted Combination", func(t *testing.T) {
		// Title 100, no artist signal (neutral 50): round(100*0.6 + 50*0.4) = 80.
		score := scorer.Calculate("Song", "", "Song", nil)
		if score.Score != 80 {
			t.Errorf("expected 80, got %d", score.Score)
		}
		if score.Level != LevelHigh {
			t.Errorf("expected high level at threshold, got %s", score.Level)
		}
	})

	t.Run("Bounded For Arbitrary Inputs", func(t *testing.T) {
		inputs := [][2]string{
			{"", ""},
			{"a", "b"},
			{"Bohemian Rhapsody", "Unrelated"},
		}
		for _, in := range inputs {
			score := scorer.Calculate(in[0], in[1], "Candidate Song", []string{"Candidate Artist"})
			if score.Score < 0 || score.Score > 100 {
				t.Errorf("score %d outside [0,100] for %v", score.Score, in)
			}
			if score.Level != scorer.LevelFor(score.Score) {
				t.Errorf("level %s does not match score %d", score.Level, score.Score)
			}
		}
	})
}

func TestLevelFor(t *testing.T) {
	scorer := NewScorer()

	tc := []struct {
		score int
		want  Level
	}{
		{100, LevelHigh},
		{80, LevelHigh},
		{79, LevelMedium},
		{50, LevelMedium},
		{49, LevelLow},
		{0, LevelLow},
	}

	for _, tt := range tc {
		if got := scorer.LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
