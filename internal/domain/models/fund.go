package models

import (
	"sort"
	"time"
)

// Fund identifies a scheme in the provider universe.
type Fund struct {
	SchemeCode string
	Name       string
}

// NavPoint is a single net-asset-value observation.
type NavPoint struct {
	Date time.Time
	Nav  float64
}

// NavSeries is an ordered NAV history. Invariant: ascending by date with
// unique dates before any computation runs; Normalize enforces it.
type NavSeries []NavPoint

// Normalize returns the series sorted ascending by date with duplicate
// dates collapsed (last observation wins).
func (s NavSeries) Normalize() NavSeries {
	if len(s) == 0 {
		return s
	}
	out := make(NavSeries, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:1]
	for _, p := range out[1:] {
		if p.Date.Equal(dedup[len(dedup)-1].Date) {
			dedup[len(dedup)-1] = p
			continue
		}
		dedup = append(dedup, p)
	}
	return dedup
}

// First returns the earliest observation. Valid only for non-empty series.
func (s NavSeries) First() NavPoint { return s[0] }

// Last returns the latest observation. Valid only for non-empty series.
func (s NavSeries) Last() NavPoint { return s[len(s)-1] }

// Since returns the sub-series of observations on or after cutoff.
func (s NavSeries) Since(cutoff time.Time) NavSeries {
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(cutoff) })
	return s[i:]
}

// Between returns the sub-series with from <= date <= to.
func (s NavSeries) Between(from, to time.Time) NavSeries {
	out := s.Since(from)
	j := sort.Search(len(out), func(i int) bool { return out[i].Date.After(to) })
	return out[:j]
}

// Navs returns the NAV values in order.
func (s NavSeries) Navs() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Nav
	}
	return out
}
