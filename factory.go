package silo

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

// NewWorld creates a world with its own schema
func (f factory) NewWorld() World {
	return newWorld(table.Factory.NewSchema())
}

// NewWorldWithSchema creates a world assigning component bits from schema
func (f factory) NewWorldWithSchema(schema table.Schema) World {
	return newWorld(schema)
}

func (f factory) NewView(accesses ...Access) *View {
	return newView(accesses...)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(view *View, w World) *Cursor {
	return newCursor(view, w.(*world))
}

// FactoryNewComponent creates the component token for T. It panics when T
// holds anything but plain data (pointers, strings, slices, maps, interfaces...).
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		Component: newComponentType[T](),
	}
}
