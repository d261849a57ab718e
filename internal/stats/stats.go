// Package stats accumulates similarity scores observed during a community
// scan and summarizes them. Distributions live for one scan and are discarded
// after reporting.
package stats

import "math"

// Distribution is a growable sequence of integer scores in [0,100].
// The zero value is ready to use.
type Distribution struct {
	scores []int
}

// Add appends a score to the distribution.
func (d *Distribution) Add(score int) {
	d.scores = append(d.scores, score)
}

// Count returns the number of recorded scores.
func (d *Distribution) Count() int {
	return len(d.scores)
}

// Mean returns the arithmetic mean, or 0 for an empty distribution.
func (d *Distribution) Mean() float64 {
	if len(d.scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range d.scores {
		sum += s
	}
	return float64(sum) / float64(len(d.scores))
}

// Min returns the smallest recorded score, or 0 when empty.
func (d *Distribution) Min() int {
	if len(d.scores) == 0 {
		return 0
	}
	min := d.scores[0]
	for _, s := range d.scores[1:] {
		if s < min {
			min = s
		}
	}
	return min
}

// Max returns the largest recorded score, or 0 when empty.
func (d *Distribution) Max() int {
	if len(d.scores) == 0 {
		return 0
	}
	max := d.scores[0]
	for _, s := range d.scores[1:] {
		if s > max {
			max = s
		}
	}
	return max
}

// StdDev returns the population standard deviation, or 0 when fewer than two
// scores have been recorded.
func (d *Distribution) StdDev() float64 {
	if len(d.scores) < 2 {
		return 0
	}
	mean := d.Mean()
	var sum float64
	for _, s := range d.scores {
		diff := float64(s) - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(d.scores)))
}

// Summary is a flattened snapshot of a distribution, suitable for logging
// and persistence once the distribution itself is discarded.
type Summary struct {
	Count  int
	Mean   float64
	Min    int
	Max    int
	StdDev float64
}

// Summarize captures the distribution's statistics.
func (d *Distribution) Summarize() Summary {
	return Summary{
		Count:  d.Count(),
		Mean:   d.Mean(),
		Min:    d.Min(),
		Max:    d.Max(),
		StdDev: d.StdDev(),
	}
}
