package organizer

import (
	"sort"

	"galleryorganizer/internal/stash"
)

// TagCache maps observed label strings to resolved tag ids for one pass.
type TagCache struct {
	ids map[string]string
}

// NewTagCache returns an empty cache.
func NewTagCache() *TagCache {
	return &TagCache{ids: make(map[string]string)}
}

// Seed records the canonical names of tags already attached to a gallery.
func (c *TagCache) Seed(tags []stash.Tag) {
	for _, tag := range tags {
		if tag.Name != "" && tag.ID != "" {
			c.ids[tag.Name] = tag.ID
		}
	}
}

// Lookup returns the cached id for name.
func (c *TagCache) Lookup(name string) (string, bool) {
	id, ok := c.ids[name]
	return id, ok
}

// Store caches an accepted lookup.
func (c *TagCache) Store(name, id string) {
	c.ids[name] = id
}

// Len returns the number of cached names.
func (c *TagCache) Len() int {
	return len(c.ids)
}

// UnresolvedTags counts labels that matched no tag, remembering the order in
// which they were first seen.
type UnresolvedTags struct {
	order  []string
	counts map[string]int
}

// NewUnresolvedTags returns an empty counter.
func NewUnresolvedTags() *UnresolvedTags {
	return &UnresolvedTags{counts: make(map[string]int)}
}

// Add counts one occurrence of name.
func (u *UnresolvedTags) Add(name string) {
	if _, seen := u.counts[name]; !seen {
		u.order = append(u.order, name)
	}
	u.counts[name]++
}

// Count returns how often name was seen.
func (u *UnresolvedTags) Count(name string) int {
	return u.counts[name]
}

// Len returns the number of distinct unresolved labels.
func (u *UnresolvedTags) Len() int {
	return len(u.order)
}

// Frequent returns the labels seen at least minCount times, most frequent
// first. Ties keep first-seen order.
func (u *UnresolvedTags) Frequent(minCount int) []string {
	var out []string
	for _, name := range u.order {
		if u.counts[name] >= minCount {
			out = append(out, name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return u.counts[out[i]] > u.counts[out[j]]
	})
	return out
}

// PerformerCache memoizes accepted performer ids per candidate name, including
// names that matched nobody.
type PerformerCache struct {
	ids map[string][]string
}

// NewPerformerCache returns an empty cache.
func NewPerformerCache() *PerformerCache {
	return &PerformerCache{ids: make(map[string][]string)}
}

// Lookup returns the cached ids for name; ok reports whether name was searched.
func (c *PerformerCache) Lookup(name string) ([]string, bool) {
	ids, ok := c.ids[name]
	return ids, ok
}

// Store caches the accepted ids for name; nil records a miss.
func (c *PerformerCache) Store(name string, ids []string) {
	c.ids[name] = ids
}
