package silo

// Read grants read-only access to the component in a view
func (c AccessibleComponent[T]) Read() Access {
	return access{component: c.Component}
}

// Write grants mutable access to the component in a view
func (c AccessibleComponent[T]) Write() Access {
	return access{component: c.Component, write: true}
}

// AddTo attaches the component with value to the entity, migrating it to the
// archetype of its new component set
func (c AccessibleComponent[T]) AddTo(w World, id EntityID, value T) error {
	return w.(*world).addComponent(id, c.Component, bytesOf(&value))
}

// EnqueueAddTo behaves like AddTo, deferring the attachment while the world is locked
func (c AccessibleComponent[T]) EnqueueAddTo(w World, id EntityID, value T) error {
	wo := w.(*world)
	if !wo.Locked() {
		return c.AddTo(w, id, value)
	}
	if !wo.Alive(id) {
		return EntityNotFoundError{ID: id}
	}
	raw := append([]byte(nil), bytesOf(&value)...)
	wo.opQueue.EnqueueComponentOp(id, c.Component, raw)
	return nil
}

// HasComponent reports whether the entity currently carries the component
func (c AccessibleComponent[T]) HasComponent(w World, id EntityID) bool {
	arch, err := w.ArchetypeOf(id)
	return err == nil && arch.Contains(c.Component)
}

// GetFromRow returns a pointer to the component in the row. The row's view
// must grant write access.
func (c AccessibleComponent[T]) GetFromRow(r Row) *T {
	return columnAt[T](r.view.column(c.Component, r.columns, true), r.index)
}

// ReadFromRow returns a copy of the component in the row
func (c AccessibleComponent[T]) ReadFromRow(r Row) T {
	return *columnAt[T](r.view.column(c.Component, r.columns, false), r.index)
}

// GetFromCursor returns a pointer to the component at the cursor position
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.GetFromRow(cursor.Row())
}

// ReadFromCursor returns a copy of the component at the cursor position
func (c AccessibleComponent[T]) ReadFromCursor(cursor *Cursor) T {
	return c.ReadFromRow(cursor.Row())
}

// SliceFromCursor returns the component column of the cursor's current
// archetype as a slice sharing its memory
func (c AccessibleComponent[T]) SliceFromCursor(cursor *Cursor) []T {
	return columnSlice[T](cursor.view.column(c.Component, cursor.columns, true))
}
