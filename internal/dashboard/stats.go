package dashboard

import (
	"cmp"
	"slices"

	"github.com/qepting91/job-feed/internal/domain"
)

// Count is one bucket of a tally
type Count struct {
	Name string
	N    int
}

// Tally groups postings by key, largest bucket first. Absent values land in the placeholder bucket.
func Tally(postings []domain.JobPosting, key func(domain.JobPosting) domain.FlexString) []Count {
	counts := make(map[string]int)
	for _, p := range postings {
		counts[key(p).Display()]++
	}

	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, N: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Top keeps the first n buckets and folds the rest into "Other"
func Top(counts []Count, n int) []Count {
	if len(counts) <= n {
		return counts
	}
	other := 0
	for _, c := range counts[n:] {
		other += c.N
	}
	return append(slices.Clone(counts[:n]), Count{Name: "Other", N: other})
}
