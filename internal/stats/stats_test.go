package stats

import (
	"math"
	"testing"
)

func TestDistributionEmpty(t *testing.T) {
	var d Distribution
	if d.Count() != 0 || d.Mean() != 0 || d.Min() != 0 || d.Max() != 0 || d.StdDev() != 0 {
		t.Errorf("empty distribution not all-zero: %+v", d.Summarize())
	}
}

func TestDistributionSingle(t *testing.T) {
	var d Distribution
	d.Add(42)
	s := d.Summarize()
	if s.Count != 1 || s.Mean != 42 || s.Min != 42 || s.Max != 42 || s.StdDev != 0 {
		t.Errorf("single-score summary wrong: %+v", s)
	}
}

func TestDistributionStats(t *testing.T) {
	var d Distribution
	for _, s := range []int{10, 20, 30, 40} {
		d.Add(s)
	}
	s := d.Summarize()
	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
	if s.Mean != 25 {
		t.Errorf("Mean = %v, want 25", s.Mean)
	}
	if s.Min != 10 || s.Max != 40 {
		t.Errorf("Min/Max = %d/%d, want 10/40", s.Min, s.Max)
	}
	want := math.Sqrt(125) // population stddev of {10,20,30,40}
	if math.Abs(s.StdDev-want) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, want)
	}
}
