package silo

import "iter"

var _ iCursor = &Cursor{}

func newCursor(view *View, w *world) *Cursor {
	return &Cursor{
		view:  view,
		world: w,
	}
}

func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.storageIndex < len(c.matchedArchetypes) {
		if arch := c.matchedArchetypes[c.storageIndex]; arch != c.currentArchetype {
			c.bind(arch)
		}
		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.storageIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Rows iterates the remaining matches, resetting the cursor when the loop ends
func (c *Cursor) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		defer c.Reset()
		for c.Next() {
			if !yield(c.Row()) {
				return
			}
		}
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matchedArchetypes = c.match()
	if need := c.view.Len() * len(c.matchedArchetypes); cap(c.columnBuf) < need {
		c.columnBuf = make([]*column, need)
	}
	c.world.iterating++
	c.locked = true
	c.initialized = true
}

func (c *Cursor) match() []*archetype {
	matched := make([]*archetype, 0)
	viewMask, ok := c.view.mask(c.world)
	if !ok {
		return matched
	}
	for _, arch := range c.world.archetypes.asSlice {
		if arch.length == 0 || !arch.mask.ContainsAll(viewMask) {
			continue
		}
		if c.view.filter != nil && !c.view.filter.Evaluate(arch, c.world) {
			continue
		}
		matched = append(matched, arch)
	}
	return matched
}

// bind projects the view onto arch, one column per view item. Each matched
// archetype owns a fixed window of columnBuf, so rows handed out for earlier
// archetypes keep their columns.
func (c *Cursor) bind(arch *archetype) {
	n := c.view.Len()
	start := c.storageIndex * n
	c.currentArchetype = arch
	c.remaining = arch.length
	c.columns, _ = c.view.bind(c.world, arch, c.columnBuf[start:start:start+n])
}

func (c *Cursor) Reset() {
	c.storageIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.currentArchetype = nil
	c.columns = nil
	c.matchedArchetypes = nil
	c.initialized = false
	if c.locked {
		c.locked = false
		c.world.unlockIteration()
	}
}

func (c *Cursor) Row() Row {
	return Row{
		view:    c.view,
		arch:    c.currentArchetype,
		columns: c.columns,
		index:   c.entityIndex - 1,
	}
}

func (c *Cursor) Entity() EntityID {
	return c.currentArchetype.entities[c.entityIndex-1]
}

func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

func (c *Cursor) TotalMatched() int {
	matched := c.matchedArchetypes
	if !c.initialized {
		matched = c.match()
	}
	total := 0
	for _, arch := range matched {
		total += arch.length
	}
	return total
}
