package silo

// indexCache assigns dense, insertion-ordered indices to keyed items up to a
// fixed capacity.
type indexCache[K comparable, T any] struct {
	items       []T
	itemIndices map[K]int
	maxCapacity int
}

func newIndexCache[K comparable, T any](capacity int) *indexCache[K, T] {
	return &indexCache[K, T]{
		itemIndices: make(map[K]int),
		maxCapacity: capacity,
	}
}

func (c *indexCache[K, T]) GetIndex(key K) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *indexCache[K, T]) GetItem(index int) *T {
	return &c.items[index]
}

func (c *indexCache[K, T]) Register(key K, item T) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, RegistryFullError{Max: c.maxCapacity}
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *indexCache[K, T]) Full() bool {
	return len(c.itemIndices) >= c.maxCapacity
}

func (c *indexCache[K, T]) Len() int {
	return len(c.items)
}

func (c *indexCache[K, T]) Clear() {
	c.items = c.items[:0]
	c.itemIndices = make(map[K]int)
}
