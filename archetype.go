package silo

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

type archetypeID uint32

var _ Archetype = &archetype{}

// archetype is a table of every entity sharing one exact component set. All
// columns and the entities list share the same length; index i in each of
// them refers to the same entity.
type archetype struct {
	id         archetypeID
	key        ArchetypeKey
	mask       mask.Mask
	columns    map[Fingerprint]*column
	components []*componentInfo
	entities   []EntityID
	length     int
}

func newArchetype(id archetypeID, capacity int, components ...*componentInfo) *archetype {
	a := &archetype{
		id:         id,
		columns:    make(map[Fingerprint]*column, len(components)),
		components: make([]*componentInfo, 0, len(components)),
		entities:   make([]EntityID, 0, capacity),
	}
	for _, info := range components {
		a.key = a.key.With(info.fingerprint)
		a.mask.Mark(info.bit)
		a.columns[info.fingerprint] = newColumn(info.meta.size, capacity)
		a.components = append(a.components, info)
	}
	return a
}

func (a *archetype) ID() uint32 {
	return uint32(a.id)
}

func (a *archetype) Key() ArchetypeKey {
	return a.key
}

func (a *archetype) Mask() mask.Mask {
	return a.mask
}

func (a *archetype) Len() int {
	return a.length
}

func (a *archetype) Contains(c Component) bool {
	return a.info(c) != nil
}

func (a *archetype) Components() []Component {
	comps := make([]Component, len(a.components))
	for i, info := range a.components {
		comps[i] = info.component
	}
	return comps
}

func (a *archetype) info(c Component) *componentInfo {
	typ := c.meta().typ
	for _, info := range a.components {
		if info.meta.typ == typ {
			return info
		}
	}
	return nil
}

func (a *archetype) componentInfos() iter.Seq[*componentInfo] {
	return func(yield func(*componentInfo) bool) {
		for _, info := range a.components {
			if !yield(info) {
				return
			}
		}
	}
}

func (a *archetype) appendEntity(id EntityID) int {
	a.entities = append(a.entities, id)
	a.length++
	return a.length - 1
}

// copyRow appends row src of a to every column dst shares with a, then
// claims the new row in dst. Columns only dst has are left for the caller.
func (a *archetype) copyRow(src int, dst *archetype) int {
	a.check(src)
	for fp, col := range a.columns {
		if dstCol, ok := dst.columns[fp]; ok {
			dstCol.appendBytes(col.readAt(src))
		}
	}
	return dst.appendEntity(a.entities[src])
}

// removeRow swap-removes row from every column. When another entity was
// moved into row it is returned with relocated set.
func (a *archetype) removeRow(row int) (moved EntityID, relocated bool) {
	a.check(row)
	for _, col := range a.columns {
		col.removeRow(row)
	}
	last := a.length - 1
	if row != last {
		a.entities[row] = a.entities[last]
		moved, relocated = a.entities[row], true
	}
	a.entities = a.entities[:last]
	a.length--
	return moved, relocated
}

func (a *archetype) check(row int) {
	if row < 0 || row >= a.length {
		panic(RowIndexError{Row: row, Len: a.length})
	}
}

func (a *archetype) deinit() {
	for _, col := range a.columns {
		col.release()
	}
	a.entities = nil
	a.length = 0
}

// archetypes is the world's table registry. Keys are XOR signatures and may
// collide across different component sets, so every key maps to a bucket
// that is resolved by exact mask comparison.
type archetypes struct {
	nextID   archetypeID
	asSlice  []*archetype
	idsByKey map[ArchetypeKey][]archetypeID
}

func newArchetypes() *archetypes {
	return &archetypes{
		nextID:   1,
		idsByKey: make(map[ArchetypeKey][]archetypeID),
	}
}

func (as *archetypes) get(id archetypeID) *archetype {
	return as.asSlice[id-1]
}

func (as *archetypes) find(key ArchetypeKey, m mask.Mask) (*archetype, bool) {
	for _, id := range as.idsByKey[key] {
		if arch := as.get(id); arch.mask == m {
			return arch, true
		}
	}
	return nil, false
}

func (as *archetypes) create(capacity int, components ...*componentInfo) *archetype {
	arch := newArchetype(as.nextID, capacity, components...)
	as.asSlice = append(as.asSlice, arch)
	as.idsByKey[arch.key] = append(as.idsByKey[arch.key], arch.id)
	as.nextID++
	return arch
}
