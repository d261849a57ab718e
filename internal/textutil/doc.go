// Package textutil provides text processing utilities for approximate string
// comparison and token sanitization.
//
// The similarity functions return integer percentages in [0,100]:
//   - Ratio compares two strings by their longest matching block decomposition
//   - PartialRatio aligns the shorter string against windows of the longer
//   - TokenSortRatio compares strings after sorting their whitespace tokens
//
// Comparisons are case-sensitive; callers that want case-insensitive behavior
// should Fold both sides first. Fold applies Unicode case folding, which
// handles user-authored text more reliably than ASCII lowercasing.
package textutil
