package match

import (
	"math"
	"strings"
)

// Level is the categorical summary of a confidence score.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Substring boosts for variant titles (remixes, edits) and partial artist
// credits that edit distance alone undervalues.
const (
	titleContainsBoost  = 85
	artistContainsBoost = 80

	// Neutral score when no artist signal is available.
	artistNeutralScore = 50
)

// Score is the result of scoring one candidate against the original query.
// Created per match attempt, never mutated.
type Score struct {
	Score       int   `json:"score"`
	Level       Level `json:"level"`
	TitleScore  int   `json:"titleScore"`
	ArtistScore int   `json:"artistScore"`
}

// Scorer combines title and artist similarity into a weighted confidence
// score. Weights and thresholds are empirically fixed defaults that may be
// overridden from configuration.
type Scorer struct {
	TitleWeight     float64
	ArtistWeight    float64
	HighThreshold   int
	MediumThreshold int
}

// NewScorer returns a Scorer with the default weights (0.6/0.4) and
// level thresholds (80/50).
func NewScorer() Scorer {
	return Scorer{
		TitleWeight:     0.6,
		ArtistWeight:    0.4,
		HighThreshold:   80,
		MediumThreshold: 50,
	}
}

// CompareTitles scores the candidate title against the query title,
// boosting to at least 85 when one normalized title contains the other.
func (s Scorer) CompareTitles(queryTitle, candidateTitle string) int {
	similarity := Similarity(queryTitle, candidateTitle)

	nq := Normalize(queryTitle)
	nc := Normalize(candidateTitle)
	if nq != "" && nc != "" && (strings.Contains(nq, nc) || strings.Contains(nc, nq)) {
		return max(similarity, titleContainsBoost)
	}

	return similarity
}

// CompareArtists scores the query artist against every candidate artist and
// keeps the best. Returns the neutral 50 when either side has no artist
// signal; that is an absence of evidence, not a mismatch.
func (s Scorer) CompareArtists(queryArtist string, candidateArtists []string) int {
	if queryArtist == "" || len(candidateArtists) == 0 {
		return artistNeutralScore
	}

	nq := Normalize(queryArtist)

	best := 0
	for _, artist := range candidateArtists {
		if similarity := Similarity(queryArtist, artist); similarity > best {
			best = similarity
		}

		na := Normalize(artist)
		if nq != "" && na != "" && (strings.Contains(nq, na) || strings.Contains(na, nq)) {
			best = max(best, artistContainsBoost)
		}
	}

	return best
}

// Calculate produces the weighted confidence score for a candidate track.
func (s Scorer) Calculate(queryTitle, queryArtist, candidateTitle string, candidateArtists []string) Score {
	titleScore := s.CompareTitles(queryTitle, candidateTitle)
	artistScore := s.CompareArtists(queryArtist, candidateArtists)

	score := int(math.Round(float64(titleScore)*s.TitleWeight + float64(artistScore)*s.ArtistWeight))

	return Score{
		Score:       score,
		Level:       s.LevelFor(score),
		TitleScore:  titleScore,
		ArtistScore: artistScore,
	}
}

// LevelFor maps a numeric score to its categorical level.
func (s Scorer) LevelFor(score int) Level {
	switch {
	case score >= s.HighThreshold:
		return LevelHigh
	case score >= s.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}
