package textutil

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var caseFolder = cases.Fold()

// Fold returns text normalized with Unicode case folding for
// case-insensitive comparison.
func Fold(text string) string {
	return caseFolder.String(text)
}

// Ratio computes the similarity of two strings as an integer percentage.
// The score is 2*M/T where M is the total length of all matching blocks and
// T is the combined length of both strings. Two empty strings score 100.
func Ratio(a, b string) int {
	return sequenceRatio([]rune(a), []rune(b))
}

// PartialRatio computes the best alignment of the shorter string against
// equal-length windows of the longer string, as an integer percentage. A
// string that contains the other verbatim scores 100. One empty input with a
// non-empty counterpart scores 0.
func PartialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}

	best := 0
	for _, block := range matchingBlocks(shorter, longer) {
		if block.size == 0 {
			continue
		}
		start := block.longStart - block.shortStart
		if start < 0 {
			start = 0
		}
		end := start + len(shorter)
		if end > len(longer) {
			end = len(longer)
		}
		score := sequenceRatio(shorter, longer[start:end])
		if score > 99 {
			return 100
		}
		if score > best {
			best = score
		}
	}
	return best
}

// TokenSortRatio compares two strings after splitting each on whitespace and
// sorting the resulting tokens alphabetically. Word order never affects the
// score; which words are present does.
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(text string) string {
	tokens := strings.Fields(text)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

type block struct {
	shortStart int
	longStart  int
	size       int
}

func sequenceRatio(a, b []rune) int {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	matched := 0
	for _, blk := range matchingBlocks(a, b) {
		matched += blk.size
	}
	return int(math.Round(200 * float64(matched) / float64(total)))
}

// matchingBlocks decomposes the pair into non-overlapping matching blocks by
// repeatedly taking the longest common contiguous run and recursing into the
// unmatched regions on either side.
func matchingBlocks(a, b []rune) []block {
	var blocks []block
	collectBlocks(a, b, 0, len(a), 0, len(b), &blocks)
	return blocks
}

func collectBlocks(a, b []rune, alo, ahi, blo, bhi int, blocks *[]block) {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return
	}
	collectBlocks(a, b, alo, i, blo, j, blocks)
	*blocks = append(*blocks, block{shortStart: i, longStart: j, size: k})
	collectBlocks(a, b, i+k, ahi, j+k, bhi, blocks)
}

func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (int, int, int) {
	besti, bestj, bestk := alo, blo, 0
	lengths := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return besti, bestj, bestk
}
