package domain

import (
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Default similarity thresholds on the 0..1 trigram scale.
const (
	IdentitySimilarityThreshold = 0.7
	TriageSimilarityThreshold   = 0.75
)

// TrigramSimilarity returns the trigram similarity of a and b in [0, 1].
//
// Each word (a run of letters or digits) is lowercased and padded with two
// leading spaces and one trailing space; the score is the number of shared
// distinct trigrams divided by the number of distinct trigrams in either
// string. Two strings without any word characters score 0.
func TrigramSimilarity(a, b string) float64 {
	return similarity(trigrams(a), trigrams(b))
}

func similarity(ta, tb map[string]struct{}) float64 {
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ta)+len(tb)-shared)
}

func trigrams(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]struct{}, len(s)+2*len(words))
	for _, w := range words {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// TopicRef is the minimal projection of a topic used for similarity scans.
type TopicRef struct {
	ID   uuid.UUID
	Name string
}

// TopicMatch is a candidate topic scored against a probe name.
type TopicMatch struct {
	Topic TopicRef
	Score float64
}

// RankSimilar scores every candidate against name and returns those scoring
// strictly above threshold, best first (ties broken by name). The candidate
// with ID exclude is skipped. limit <= 0 means no limit.
func RankSimilar(name string, candidates []TopicRef, threshold float64, limit int, exclude uuid.UUID) []TopicMatch {
	probe := trigrams(name)
	if len(probe) == 0 {
		return nil
	}

	var matches []TopicMatch
	for _, c := range candidates {
		if c.ID == exclude {
			continue
		}
		score := similarity(probe, trigrams(c.Name))
		if score > threshold {
			matches = append(matches, TopicMatch{Topic: c, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Topic.Name < matches[j].Topic.Name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
