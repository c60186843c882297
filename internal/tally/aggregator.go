package tally

import (
	"cmp"
	"slices"
	"sync"

	"github.com/nao1215/jsrank/internal/model"
)

// Aggregator is a concurrency-safe occurrence table keyed by filename.
// Keys are case-sensitive. A count is at least 1 once its key exists and
// never decreases.
type Aggregator struct {
	mu     sync.Mutex
	counts map[string]int
	// order holds keys in first-insertion order; TopN breaks ties with it.
	order []string
	total int
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		counts: make(map[string]int),
		order:  make([]string, 0),
	}
}

// Increment adds one occurrence of filename, inserting it at 1 when absent.
func (a *Aggregator) Increment(filename string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.counts[filename]; !ok {
		a.order = append(a.order, filename)
	}
	a.counts[filename]++
	a.total++
}

// Add increments every filename in names.
func (a *Aggregator) Add(names []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, name := range names {
		if _, ok := a.counts[name]; !ok {
			a.order = append(a.order, name)
		}
		a.counts[name]++
		a.total++
	}
}

// Count returns the number of occurrences of filename.
func (a *Aggregator) Count(filename string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[filename]
}

// Len returns the number of distinct filenames.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.order)
}

// Total returns the number of occurrences across all filenames.
func (a *Aggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Entries returns a snapshot of all entries in first-insertion order.
func (a *Aggregator) Entries() []model.ScriptCount {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := make([]model.ScriptCount, 0, len(a.order))
	for _, name := range a.order {
		entries = append(entries, model.ScriptCount{Filename: name, Count: a.counts[name]})
	}
	return entries
}

// TopN returns up to n entries ordered by count, highest first. Entries
// with equal counts keep their first-insertion order. It returns an empty
// slice when n <= 0.
func (a *Aggregator) TopN(n int) []model.ScriptCount {
	if n <= 0 {
		return make([]model.ScriptCount, 0)
	}

	entries := a.Entries()
	slices.SortStableFunc(entries, func(x, y model.ScriptCount) int {
		return cmp.Compare(y.Count, x.Count)
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
