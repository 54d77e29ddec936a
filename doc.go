/*
Package silo provides an in-memory, archetype-based entity/component store.

Entities are grouped by the exact set of component types they carry. Each
group (an archetype) is a columnar table: one contiguous, type-erased byte
column per component, with row i of every column describing the same entity.
Attaching a component migrates the entity's row into the archetype of its new
component set. Queries scan the archetypes and project matching rows into
typed views.

Core Concepts:

  - Entity: A generation-tagged handle to one row of one archetype.
  - Component: A plain data record (numbers, booleans, arrays and structs of them).
  - Archetype: A table of all entities sharing one exact component set,
    identified by the XOR of its components' fingerprints.
  - View: The components a query projects, each with read or write access.

Basic Usage:

	world := silo.Factory.NewWorld()

	// Define components
	position := silo.FactoryNewComponent[Position]()
	velocity := silo.FactoryNewComponent[Velocity]()

	// Create an entity and attach components
	e, _ := world.AddEntity()
	position.AddTo(world, e, Position{X: 1, Y: 1})
	velocity.AddTo(world, e, Velocity{X: 0, Y: 1})

	// Query entities and process them
	view := silo.Factory.NewView(position.Write(), velocity.Read())
	cursor := silo.Factory.NewCursor(view, world)

	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.ReadFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}

Worlds are not safe for concurrent use. A cursor locks its world while it
iterates: structural changes then fail with LockedWorldError, and the Enqueue
variants defer them until the last lock is released.
*/
package silo
