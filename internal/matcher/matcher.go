// Package matcher decides whether a piece of user-authored text expresses a
// need similar to any phrase in a catalog.
//
// Two policies coexist and are deliberately not unified: the fuzzy threshold
// check (Evaluate) used for phrase catalogs and post-level keyword results,
// and plain case-insensitive substring containment (ContainsAny) used to
// filter comments in keyword mode.
package matcher

import (
	"strings"

	"prospector/internal/textutil"
)

// DefaultThreshold is the similarity score a candidate must reach before it
// counts as a match. Tunable per scan through configuration.
const DefaultThreshold = 70

// Evaluate reports whether text is similar enough to any catalog phrase.
//
// For each phrase, in order, it computes a partial-overlap score and a
// token-order-insensitive score against the case-folded text. The first score
// that reaches threshold wins and evaluation stops there (first-match
// policy). When nothing crosses the threshold, the returned score is the
// best seen across all phrases and both metrics. An empty catalog yields
// (false, 0); empty text is valid and simply scores low.
//
// The function is pure: identical inputs always produce identical results.
func Evaluate(text string, phrases []string, threshold int) (bool, int) {
	matched, score, _ := EvaluatePhrase(text, phrases, threshold)
	return matched, score
}

// EvaluatePhrase behaves like Evaluate and additionally reports which phrase
// triggered the match. Under the first-match policy this is the first phrase
// whose score reached the threshold, not necessarily the globally best one.
// When no phrase matches, the returned phrase is empty.
func EvaluatePhrase(text string, phrases []string, threshold int) (bool, int, string) {
	folded := textutil.Fold(text)
	best := 0
	for _, phrase := range phrases {
		target := textutil.Fold(phrase)
		if score := textutil.PartialRatio(folded, target); score >= threshold {
			return true, score, phrase
		} else if score > best {
			best = score
		}
		if score := textutil.TokenSortRatio(folded, target); score >= threshold {
			return true, score, phrase
		} else if score > best {
			best = score
		}
	}
	return false, best, ""
}

// ContainsAny reports whether any keyword appears in text as a
// case-insensitive substring, returning the first keyword that does.
func ContainsAny(text string, keywords []string) (bool, string) {
	folded := textutil.Fold(text)
	for _, keyword := range keywords {
		target := textutil.Fold(keyword)
		if target == "" {
			continue
		}
		if strings.Contains(folded, target) {
			return true, keyword
		}
	}
	return false, ""
}
