package silo

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

type World interface {
	AddEntity() (EntityID, error)
	NewEntities(int) ([]EntityID, error)
	EnqueueNewEntities(int) error
	RemoveEntity(EntityID) error
	EnqueueRemoveEntities(...EntityID) error
	Entity(EntityID, *View) (Row, error)
	Alive(EntityID) bool
	ArchetypeOf(EntityID) (Archetype, error)
	Archetypes() []Archetype
	FingerprintOf(Component) (Fingerprint, bool)
	Query(*View) iter.Seq[Row]
	Len() int
	Locked() bool
	AddLock(bit uint32)
	RemoveLock(bit uint32)
	Close() error
}

type Archetype interface {
	ID() uint32
	Key() ArchetypeKey
	Mask() mask.Mask
	Len() int
	Contains(Component) bool
	Components() []Component
}

// Access is a read or write capability on one component, used to build views
type Access interface {
	Component() Component
	Writable() bool
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype, world World) bool
}

type iCursor interface {
	Next() bool
	Row() Row
	Entity() EntityID
	Reset()
}

// Cursor walks every row of every archetype matching a view.
// A cursor locks its world from the first call to Next until it is
// exhausted or Reset.
type Cursor struct {
	// The view to project rows through
	view *View

	// The world to iterate over
	world *world

	// Current iteration state
	currentArchetype *archetype
	columns          []*column
	columnBuf        []*column
	storageIndex     int
	entityIndex      int
	remaining        int

	// Initialization state
	initialized       bool
	locked            bool
	matchedArchetypes []*archetype
}

// AccessibleComponent pairs a Component token with typed access to its data
type AccessibleComponent[T any] struct {
	Component
}
