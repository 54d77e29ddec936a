package silo

import "fmt"

// EntityID is a generation-tagged handle: the low 32 bits index the entity
// table, the high 32 bits hold the slot generation. The zero ID is never issued.
type EntityID uint64

func newEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32 {
	return uint32(id)
}

func (id EntityID) Generation() uint32 {
	return uint32(id >> 32)
}

func (id EntityID) IsZero() bool {
	return id == 0
}

func (id EntityID) String() string {
	return fmt.Sprintf("%d@%d", id.Index(), id.Generation())
}

// entityRecord is the indirection entry for one slot of the entity table.
type entityRecord struct {
	key        ArchetypeKey
	archetype  archetypeID
	row        int
	generation uint32
	alive      bool
}

// entityTable maps EntityIDs to their current archetype row. Freed slots are
// recycled with a bumped generation so a removed ID never resolves again.
type entityTable struct {
	records []entityRecord
	free    []uint32
	alive   int
}

func (t *entityTable) allocate(key ArchetypeKey, arch archetypeID, row int) EntityID {
	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.records))
		t.records = append(t.records, entityRecord{})
	}
	rec := &t.records[index]
	rec.generation++
	if rec.generation == 0 {
		rec.generation = 1
	}
	rec.key = key
	rec.archetype = arch
	rec.row = row
	rec.alive = true
	t.alive++
	return newEntityID(index, rec.generation)
}

func (t *entityTable) get(id EntityID) (*entityRecord, bool) {
	if id.IsZero() {
		return nil, false
	}
	index := id.Index()
	if int(index) >= len(t.records) {
		return nil, false
	}
	rec := &t.records[index]
	if !rec.alive || rec.generation != id.Generation() {
		return nil, false
	}
	return rec, true
}

func (t *entityTable) release(id EntityID) {
	rec := &t.records[id.Index()]
	rec.alive = false
	rec.row = -1
	t.free = append(t.free, id.Index())
	t.alive--
}

// clear kills every live entity, keeping generations so old IDs stay stale
func (t *entityTable) clear() {
	for i := range t.records {
		if t.records[i].alive {
			t.release(newEntityID(uint32(i), t.records[i].generation))
		}
	}
}
