// Copyright © 2026 The Quill authors

package analysis

import (
	"container/list"
	"sync"
)

// Cache holds the most recently built symbol tables keyed by document id
// (a path or URI). It is owned by the caller, typically a workspace or
// editor session. Entries are dropped wholesale: any change to a document's
// text rebuilds its table, and Invalidate must be called when a document is
// edited, closed or deleted. Capacity bounds the number of documents kept;
// the least recently used entry is evicted first.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used
}

type cacheEntry struct {
	id    string
	text  string
	table *Table
}

// NewCache creates a cache holding up to capacity documents. Values <= 0
// are normalized to 1.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Table returns the symbol table for document id with the given text,
// building it if no entry exists or the cached entry was built from
// different text.
func (c *Cache) Table(id, text string) *Table {
	c.mu.Lock()
	if el, ok := c.items[id]; ok {
		e := el.Value.(*cacheEntry)
		if e.text == text {
			c.order.MoveToFront(el)
			c.mu.Unlock()
			return e.table
		}
	}
	c.mu.Unlock()

	// Build outside the lock; tables are pure functions of the text.
	table := NewTable(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[id]; ok {
		el.Value = &cacheEntry{id: id, text: text, table: table}
		c.order.MoveToFront(el)
		return table
	}
	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.items[id] = c.order.PushFront(&cacheEntry{id: id, text: text, table: table})
	return table
}

// Symbols is a convenience for Table(id, text).Symbols.
func (c *Cache) Symbols(id, text string) []*Symbol {
	return c.Table(id, text).Symbols
}

// Invalidate drops the entry for id. It reports whether an entry existed.
func (c *Cache) Invalidate(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[id]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, id)
	return true
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*cacheEntry).id)
}
