// Package lru is a bounded least recently used cache.
package lru

// node is a doubly-linked list node with freelist support.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// Cache is a least recently used cache. A capacity of zero or less means the cache is unbounded. Cache is not safe
// for concurrent use.
type Cache[K comparable, V any] struct {
	m    map[K]*node[K, V]
	head *node[K, V]

	tail     *node[K, V]
	len      int
	cap      int
	freelist *node[K, V]
}

// New creates a new Cache. cap is the maximum size of the cache.
func New[K comparable, V any](cap int) *Cache[K, V] {
	head := &node[K, V]{}
	tail := &node[K, V]{}
	head.next = tail
	tail.prev = head

	size := cap
	if size < 0 {
		size = 0
	}

	return &Cache[K, V]{
		cap:  cap,
		m:    make(map[K]*node[K, V], size),
		head: head,
		tail: tail,
	}
}

// Get returns the value stored for key and marks it as most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Put stores value for key. If key is already present its value is replaced. The least recently used entry is
// evicted when the cache is full.
func (c *Cache[K, V]) Put(key K, value V) {
	if n, present := c.m[key]; present {
		n.value = value
		c.moveToFront(n)
		return
	}

	if c.cap > 0 && c.len >= c.cap {
		c.evictOldest()
	}

	n := c.allocNode()
	n.key = key
	n.value = value
	c.insertAfter(c.head, n)
	c.m[key] = n
	c.len++
}

// Remove removes key. Does nothing if not found.
func (c *Cache[K, V]) Remove(key K) {
	n, ok := c.m[key]
	if !ok {
		return
	}
	delete(c.m, key)
	c.unlink(n)
	c.len--
	c.freeNode(n)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	for n := c.head.next; n != c.tail; {
		next := n.next
		c.freeNode(n)
		n = next
	}

	clear(c.m)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.len = 0
}

// Resize changes the capacity, evicting least recently used entries as needed.
func (c *Cache[K, V]) Resize(cap int) {
	c.cap = cap
	for c.cap > 0 && c.len > c.cap {
		c.evictOldest()
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.len
}

// Cap returns the maximum number of cached entries.
func (c *Cache[K, V]) Cap() int {
	return c.cap
}

// Keys returns the keys from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, c.len)
	for n := c.head.next; n != c.tail; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

func (c *Cache[K, V]) evictOldest() {
	n := c.tail.prev
	if n == c.head {
		return
	}
	delete(c.m, n.key)
	c.unlink(n)
	c.len--
	c.freeNode(n)
}

// List operations - sentinel nodes eliminate nil checks

func (c *Cache[K, V]) insertAfter(at, n *node[K, V]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (c *Cache[K, V]) moveToFront(n *node[K, V]) {
	if n.prev == c.head {
		return
	}
	c.unlink(n)
	c.insertAfter(c.head, n)
}

// Node pool operations - reuse evicted nodes to avoid allocations

func (c *Cache[K, V]) allocNode() *node[K, V] {
	if c.freelist != nil {
		n := c.freelist
		c.freelist = n.next
		n.next = nil
		n.prev = nil
		return n
	}
	return &node[K, V]{}
}

func (c *Cache[K, V]) freeNode(n *node[K, V]) {
	var zeroK K
	var zeroV V
	n.key = zeroK
	n.value = zeroV
	n.prev = nil
	n.next = c.freelist
	c.freelist = n
}
