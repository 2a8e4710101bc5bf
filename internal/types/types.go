package types

import "time"

// CountRequest is the payload for batch prime counts.
type CountRequest struct {
	Limits []int `json:"limits"`
}

// CountEntry is one resolved bound.
type CountEntry struct {
	Limit      int    `json:"limit"`
	Count      int    `json:"count"`
	Source     string `json:"source"` // "cache", "store" or "compute"
	ElapsedMS  int64  `json:"elapsed_ms"`
	ComputedAt string `json:"computed_at"` // RFC3339
}

// ErrorEntry captures a per-limit failure.
type ErrorEntry struct {
	Limit int    `json:"limit"`
	Error string `json:"error"`
}

// CountResponse is the JSON response for the count endpoint.
type CountResponse struct {
	Counts []CountEntry `json:"counts"`
	Errors []ErrorEntry `json:"errors"`
}

// IsPrimeResponse answers a single primality query.
type IsPrimeResponse struct {
	N     int  `json:"n"`
	Prime bool `json:"prime"`
}

func NowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

func NewCountEntry(limit, count int, source string, elapsed time.Duration, ts time.Time) CountEntry {
	return CountEntry{
		Limit:      limit,
		Count:      count,
		Source:     source,
		ElapsedMS:  elapsed.Milliseconds(),
		ComputedAt: ts.UTC().Format(time.RFC3339),
	}
}

// SumCounts adds up the counts of all entries.
func SumCounts(entries []CountEntry) int {
	total := 0
	for i := range entries {
		total += entries[i].Count
	}
	return total
}
