package silo

import (
	"iter"
	"log/slog"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ World = &world{}

type world struct {
	registry   *componentRegistry
	archetypes *archetypes
	void       *archetype
	entities   entityTable
	opQueue    opQueue
	iterating  int
	locks      mask.Mask
	logger     *slog.Logger
	capacity   int
}

func newWorld(schema table.Schema) World {
	w := &world{
		registry:   newComponentRegistry(schema, Config.fingerprint),
		archetypes: newArchetypes(),
		opQueue:    newOpQueue(),
		logger:     Config.logger,
		capacity:   Config.columnCapacity,
	}
	w.void = w.archetypes.create(w.capacity)
	return w
}

func (w *world) AddEntity() (EntityID, error) {
	if w.Locked() {
		return 0, LockedWorldError{}
	}
	return w.addEntity(), nil
}

func (w *world) NewEntities(n int) ([]EntityID, error) {
	if w.Locked() {
		return nil, LockedWorldError{}
	}
	ids := make([]EntityID, max(n, 0))
	for i := range ids {
		ids[i] = w.addEntity()
	}
	return ids, nil
}

func (w *world) addEntity() EntityID {
	id := w.entities.allocate(VoidKey, w.void.id, w.void.length)
	w.void.appendEntity(id)
	return id
}

func (w *world) EnqueueNewEntities(n int) error {
	if !w.Locked() {
		_, err := w.NewEntities(n)
		return err
	}
	w.opQueue.EnqueueCreate(n)
	return nil
}

func (w *world) RemoveEntity(id EntityID) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, ok := w.entities.get(id)
	if !ok {
		return EntityNotFoundError{ID: id}
	}
	arch := w.archetypes.get(rec.archetype)
	w.detach(arch, rec.row)
	w.entities.release(id)
	w.logger.Debug("entity removed", bark.KeyOperation, "remove", "entity", id, "archetype", arch.id)
	return nil
}

// EnqueueRemoveEntities removes every id, deferring the removal while the
// world is locked. Repeated ids count once. If any id is unknown nothing is
// removed or queued.
func (w *world) EnqueueRemoveEntities(ids ...EntityID) error {
	for _, id := range ids {
		if !w.Alive(id) {
			return EntityNotFoundError{ID: id}
		}
	}
	if w.Locked() {
		w.opQueue.EnqueueDestroy(ids)
		return nil
	}
	for _, id := range ids {
		// Already removed as an earlier duplicate
		if !w.Alive(id) {
			continue
		}
		if err := w.RemoveEntity(id); err != nil {
			return err
		}
	}
	return nil
}

// detach swap-removes row from arch and re-points the entity that was moved
// into the vacated row.
func (w *world) detach(arch *archetype, row int) {
	moved, relocated := arch.removeRow(row)
	if !relocated {
		return
	}
	rec, _ := w.entities.get(moved)
	rec.row = row
}

// addComponent migrates the entity to the archetype of its component set
// plus c, appending raw as the new component's bytes. The source row is only
// removed once the destination row is complete.
func (w *world) addComponent(id EntityID, c Component, raw []byte) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, ok := w.entities.get(id)
	if !ok {
		return EntityNotFoundError{ID: id}
	}
	src := w.archetypes.get(rec.archetype)
	if src.Contains(c) {
		return ComponentExistsError{Component: c}
	}
	info, err := w.registry.register(c)
	if err != nil {
		w.logger.Debug("component registration failed",
			bark.KeyOperation, "attach",
			bark.KeyComponent, componentName(c),
			bark.KeyError, err,
		)
		return err
	}

	targetKey := rec.key.With(info.fingerprint)
	targetMask := src.mask
	targetMask.Mark(info.bit)

	dst, found := w.archetypes.find(targetKey, targetMask)
	if !found {
		comps := append(iter_util.Collect(src.componentInfos()), info)
		dst = w.archetypes.create(w.capacity, comps...)
		w.logger.Debug("archetype created",
			bark.KeyOperation, "attach",
			"archetype", dst.id,
			"key", dst.key,
			"components", len(comps),
		)
	}

	row := rec.row
	newRow := src.copyRow(row, dst)
	dst.columns[info.fingerprint].appendBytes(raw)
	w.detach(src, row)

	rec.key = dst.key
	rec.archetype = dst.id
	rec.row = newRow
	return nil
}

func (w *world) Entity(id EntityID, view *View) (Row, error) {
	rec, ok := w.entities.get(id)
	if !ok {
		return Row{}, EntityNotFoundError{ID: id}
	}
	arch := w.archetypes.get(rec.archetype)
	cols, missing := view.bind(w, arch, nil)
	if missing != nil {
		return Row{}, ComponentNotFoundError{Component: missing}
	}
	return Row{view: view, arch: arch, columns: cols, index: rec.row}, nil
}

func (w *world) Alive(id EntityID) bool {
	_, ok := w.entities.get(id)
	return ok
}

func (w *world) ArchetypeOf(id EntityID) (Archetype, error) {
	rec, ok := w.entities.get(id)
	if !ok {
		return nil, EntityNotFoundError{ID: id}
	}
	return w.archetypes.get(rec.archetype), nil
}

func (w *world) Archetypes() []Archetype {
	archs := make([]Archetype, len(w.archetypes.asSlice))
	for i, arch := range w.archetypes.asSlice {
		archs[i] = arch
	}
	return archs
}

func (w *world) FingerprintOf(c Component) (Fingerprint, bool) {
	info, ok := w.registry.lookup(c)
	if !ok {
		return 0, false
	}
	return info.fingerprint, true
}

func (w *world) Query(view *View) iter.Seq[Row] {
	return newCursor(view, w).Rows()
}

func (w *world) Len() int {
	return w.entities.alive
}

func (w *world) Locked() bool {
	return w.iterating > 0 || !w.locks.IsEmpty()
}

func (w *world) AddLock(bit uint32) {
	w.locks.Mark(bit)
}

func (w *world) RemoveLock(bit uint32) {
	w.locks.Unmark(bit)
	if !w.Locked() {
		w.processOperationQueue()
	}
}

func (w *world) unlockIteration() {
	w.iterating--
	if !w.Locked() {
		w.processOperationQueue()
	}
}

// Close releases every column buffer and forgets all entities. Archetypes and
// registered component types survive and can be filled again. A locked world
// is left untouched.
func (w *world) Close() error {
	if w.Locked() {
		return LockedWorldError{}
	}
	for _, arch := range w.archetypes.asSlice {
		arch.deinit()
	}
	w.entities.clear()
	w.opQueue = newOpQueue()
	return nil
}
