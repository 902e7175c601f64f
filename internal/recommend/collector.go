// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package recommend

// collector accumulates items for one request. It holds the running list,
// the ids already taken and the ids that must never be taken.
type collector struct {
	items    []Item
	seen     map[int]struct{}
	excluded map[int]struct{}
	limit    int
}

func newCollector(excluded map[int]struct{}, limit int) *collector {
	return &collector{
		items:    make([]Item, 0, limit),
		seen:     make(map[int]struct{}, limit),
		excluded: excluded,
		limit:    limit,
	}
}

func (c *collector) full() bool {
	return len(c.items) >= c.limit
}

func (c *collector) admissible(id int) bool {
	if _, ok := c.excluded[id]; ok {
		return false
	}
	_, ok := c.seen[id]
	return !ok
}

// add appends item unless the collector is full or the id is excluded or
// already taken. It reports whether the item was appended.
func (c *collector) add(item Item) bool {
	if c.full() || !c.admissible(item.ExternalID) {
		return false
	}
	c.seen[item.ExternalID] = struct{}{}
	c.items = append(c.items, item)
	return true
}

// addAll offers every item in order and returns how many were appended.
func (c *collector) addAll(items []Item) int {
	added := 0
	for i := range items {
		if c.full() {
			break
		}
		if c.add(items[i]) {
			added++
		}
	}
	return added
}

// addUpTo offers items in order until max have been appended.
func (c *collector) addUpTo(items []Item, maxItems int) int {
	added := 0
	for i := range items {
		if added >= maxItems || c.full() {
			break
		}
		if c.add(items[i]) {
			added++
		}
	}
	return added
}

// split returns the displayed items and the buffer.
func (c *collector) split() (recommendations, buffer []Item) {
	n := len(c.items)
	if n > FetchedCount {
		n = FetchedCount
	}
	if n <= DisplayedCount {
		return c.items[:n], []Item{}
	}
	return c.items[:DisplayedCount], c.items[DisplayedCount:n]
}

// sourceCounts counts the collected items per source.
func (c *collector) sourceCounts() map[Source]int {
	counts := make(map[Source]int)
	for i := range c.items {
		counts[c.items[i].Source]++
	}
	return counts
}
