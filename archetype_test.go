package silo

import (
	"testing"
)

// assertRowCounts checks that every column of every archetype holds exactly
// one element per row.
func assertRowCounts(t *testing.T, w World) {
	t.Helper()
	for _, arch := range w.(*world).archetypes.asSlice {
		if len(arch.entities) != arch.length {
			t.Errorf("archetype %d: %d entity back-pointers, %d rows", arch.id, len(arch.entities), arch.length)
		}
		for fp, col := range arch.columns {
			if col.len != arch.length {
				t.Errorf("archetype %d column %x: len %d, archetype rows %d", arch.id, fp, col.len, arch.length)
			}
			if len(col.buf) != col.size*arch.length {
				t.Errorf("archetype %d column %x: %d bytes, want %d", arch.id, fp, len(col.buf), col.size*arch.length)
			}
		}
	}
}

func testInfos(t *testing.T, components ...Component) []*componentInfo {
	t.Helper()
	reg := newComponentRegistry(newTestSchema(), nil)
	infos := make([]*componentInfo, len(components))
	for i, c := range components {
		info, err := reg.register(c)
		if err != nil {
			t.Fatalf("register(%s) failed: %v", componentName(c), err)
		}
		infos[i] = info
	}
	return infos
}

func TestArchetypeCopyRow(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()
	infos := testInfos(t, posComp, velComp, healthComp)
	pos, vel, health := infos[0], infos[1], infos[2]

	src := newArchetype(1, 0, pos, vel)
	dst := newArchetype(2, 0, pos, vel, health)

	for i := range 3 {
		p := Position{X: float64(i)}
		v := Velocity{Y: float64(i)}
		src.columns[pos.fingerprint].appendBytes(bytesOf(&p))
		src.columns[vel.fingerprint].appendBytes(bytesOf(&v))
		src.appendEntity(newEntityID(uint32(i), 1))
	}

	newRow := src.copyRow(1, dst)
	if newRow != 0 || dst.length != 1 {
		t.Fatalf("copyRow returned row %d, dst length %d", newRow, dst.length)
	}
	if got := *columnAt[Position](dst.columns[pos.fingerprint], 0); got.X != 1 {
		t.Errorf("copied position = %+v, want X=1", got)
	}
	if got := *columnAt[Velocity](dst.columns[vel.fingerprint], 0); got.Y != 1 {
		t.Errorf("copied velocity = %+v, want Y=1", got)
	}
	if dst.entities[0] != newEntityID(1, 1) {
		t.Errorf("copied back-pointer = %v, want %v", dst.entities[0], newEntityID(1, 1))
	}
	// The destination-only column is left to the caller
	if got := dst.columns[health.fingerprint].len; got != 0 {
		t.Errorf("health column len = %d, want 0", got)
	}
	if src.length != 3 {
		t.Errorf("copyRow changed source length to %d", src.length)
	}
}

func TestArchetypeRemoveRow(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	pos := testInfos(t, posComp)[0]

	tests := []struct {
		name          string
		remove        int
		wantMoved     EntityID
		wantRelocated bool
	}{
		{"First row", 0, newEntityID(3, 1), true},
		{"Last row", 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arch := newArchetype(1, 0, pos)
			for i := range 4 {
				p := Position{X: float64(i)}
				arch.columns[pos.fingerprint].appendBytes(bytesOf(&p))
				arch.appendEntity(newEntityID(uint32(i), 1))
			}

			moved, relocated := arch.removeRow(tt.remove)
			if relocated != tt.wantRelocated || moved != tt.wantMoved {
				t.Errorf("removeRow = (%v, %v), want (%v, %v)", moved, relocated, tt.wantMoved, tt.wantRelocated)
			}
			if arch.length != 3 || arch.columns[pos.fingerprint].len != 3 || len(arch.entities) != 3 {
				t.Errorf("lengths after removal: rows %d, column %d, entities %d",
					arch.length, arch.columns[pos.fingerprint].len, len(arch.entities))
			}
			if relocated {
				if got := columnAt[Position](arch.columns[pos.fingerprint], tt.remove).X; got != 3 {
					t.Errorf("relocated row X = %v, want 3", got)
				}
			}
		})
	}
}

func TestArchetypeKeyIsOrderIndependent(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()
	infos := testInfos(t, posComp, velComp, healthComp)

	a := newArchetype(1, 0, infos[0], infos[1], infos[2])
	b := newArchetype(2, 0, infos[2], infos[0], infos[1])
	if a.key != b.key {
		t.Errorf("keys differ by insertion order: %x vs %x", a.key, b.key)
	}
	if a.mask != b.mask {
		t.Errorf("masks differ by insertion order")
	}
	if VoidKey.With(infos[0].fingerprint).With(infos[0].fingerprint) != VoidKey {
		t.Errorf("folding a fingerprint twice should cancel out")
	}
}

func TestArchetypeConvergence(t *testing.T) {
	world := Factory.NewWorld()
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()

	e1, _ := world.AddEntity()
	e2, _ := world.AddEntity()

	posComp.AddTo(world, e1, Position{X: 1})
	velComp.AddTo(world, e1, Velocity{X: 1})
	velComp.AddTo(world, e2, Velocity{X: 2})
	posComp.AddTo(world, e2, Position{X: 2})

	a1, _ := world.ArchetypeOf(e1)
	a2, _ := world.ArchetypeOf(e2)
	if a1.ID() != a2.ID() {
		t.Errorf("entities in archetypes %d and %d, want the same", a1.ID(), a2.ID())
	}
	if a1.Len() != 2 {
		t.Errorf("shared archetype holds %d rows, want 2", a1.Len())
	}
	// void, {P}, {P,V}, {V}
	if got := len(world.Archetypes()); got != 4 {
		t.Errorf("world holds %d archetypes, want 4", got)
	}
}

func TestArchetypeCreation(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()

	tests := []struct {
		name                string
		firstComponents     []attacher
		secondComponents    []attacher
		expectSameArchetype bool
	}{
		{
			name:                "Identical components",
			firstComponents:     []attacher{attach(posComp, Position{}), attach(velComp, Velocity{})},
			secondComponents:    []attacher{attach(posComp, Position{}), attach(velComp, Velocity{})},
			expectSameArchetype: true,
		},
		{
			name:                "Different order",
			firstComponents:     []attacher{attach(posComp, Position{}), attach(velComp, Velocity{})},
			secondComponents:    []attacher{attach(velComp, Velocity{}), attach(posComp, Position{})},
			expectSameArchetype: true,
		},
		{
			name:                "Different components",
			firstComponents:     []attacher{attach(posComp, Position{})},
			secondComponents:    []attacher{attach(velComp, Velocity{})},
			expectSameArchetype: false,
		},
		{
			name:                "Subset components",
			firstComponents:     []attacher{attach(posComp, Position{}), attach(velComp, Velocity{})},
			secondComponents:    []attacher{attach(posComp, Position{})},
			expectSameArchetype: false,
		},
		{
			name:                "Superset components",
			firstComponents:     []attacher{attach(posComp, Position{})},
			secondComponents:    []attacher{attach(posComp, Position{}), attach(velComp, Velocity{}), attach(healthComp, Health{})},
			expectSameArchetype: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := Factory.NewWorld()
			first := newEntityWith(t, world, tt.firstComponents...)
			second := newEntityWith(t, world, tt.secondComponents...)

			archetype1, _ := world.ArchetypeOf(first)
			archetype2, _ := world.ArchetypeOf(second)

			sameArchetype := archetype1.ID() == archetype2.ID()
			if sameArchetype != tt.expectSameArchetype {
				t.Errorf("Archetypes same: %v, expected: %v", sameArchetype, tt.expectSameArchetype)
			}
			assertRowCounts(t, world)
		})
	}
}

// attacher attaches one component to an entity
type attacher func(World, EntityID) error

func attach[T any](c AccessibleComponent[T], value T) attacher {
	return func(w World, id EntityID) error {
		return c.AddTo(w, id, value)
	}
}

func newEntityWith(t *testing.T, w World, attachers ...attacher) EntityID {
	t.Helper()
	id, err := w.AddEntity()
	if err != nil {
		t.Fatalf("AddEntity failed: %v", err)
	}
	for _, a := range attachers {
		if err := a(w, id); err != nil {
			t.Fatalf("attach failed: %v", err)
		}
	}
	return id
}
