// Package index holds the in-memory article index.
//
// A rebuild constructs a complete new generation off to the side and
// publishes it with a single atomic pointer swap, so readers always see
// one internally consistent generation across the by-id map, the by-tag
// map, and the sorted id sequence. Reads are lock-free.
package index

import (
	"slices"
	"sync/atomic"

	"github.com/first-storm/henkaiki/internal/metainfo"
)

// Index is the concurrently readable article index.
type Index struct {
	current atomic.Pointer[snapshot]
}

// snapshot is one immutable index generation.
type snapshot struct {
	byID      map[int32]*metainfo.Metainfo
	byTag     map[string][]int32
	sortedIDs []int32
}

var emptySnapshot = &snapshot{
	byID:  map[int32]*metainfo.Metainfo{},
	byTag: map[string][]int32{},
}

// New creates an empty index.
func New() *Index {
	ix := &Index{}
	ix.current.Store(emptySnapshot)
	return ix
}

// Rebuild replaces the index contents with a generation derived from the
// given descriptor set. Descriptors sharing an id collapse to the last
// one seen. Concurrent readers keep the previous generation until the
// swap; concurrent rebuilds are safe, last publish wins.
func (ix *Index) Rebuild(descriptors []*metainfo.Metainfo) {
	next := &snapshot{
		byID:  make(map[int32]*metainfo.Metainfo, len(descriptors)),
		byTag: make(map[string][]int32),
	}

	for _, m := range descriptors {
		next.byID[m.ID] = m
	}

	next.sortedIDs = make([]int32, 0, len(next.byID))
	for id := range next.byID {
		next.sortedIDs = append(next.sortedIDs, id)
	}
	slices.Sort(next.sortedIDs)

	// Walk ids in ascending order so tag postings come out pre-sorted.
	for _, id := range next.sortedIDs {
		for _, tag := range next.byID[id].Tags {
			next.byTag[tag] = append(next.byTag[tag], id)
		}
	}

	ix.current.Store(next)
}

// Lookup returns the descriptor for id in the current generation.
// The descriptor is shared and must not be mutated.
func (ix *Index) Lookup(id int32) (*metainfo.Metainfo, bool) {
	m, ok := ix.current.Load().byID[id]
	return m, ok
}

// AllIDs returns every indexed id in ascending order.
// The slice belongs to the current generation and must not be mutated.
func (ix *Index) AllIDs() []int32 {
	return ix.current.Load().sortedIDs
}

// IDsForTag returns the ids carrying tag, ascending. An unknown tag
// yields an empty sequence, not an error.
func (ix *Index) IDsForTag(tag string) []int32 {
	return ix.current.Load().byTag[tag]
}

// Len returns the number of indexed articles.
func (ix *Index) Len() int {
	return len(ix.current.Load().byID)
}
