package silo

import (
	"github.com/TheBitDrifter/bark"
)

type operation struct {
	typ       operationType
	amount    int
	entities  []EntityID
	component Component
	raw       []byte
}

type operationType int

const (
	opNone operationType = iota
	opCreate
	opDestroy
	opAddComponent
)

type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[EntityID]struct{}
	pendingMods    map[EntityID][]int // componentOps indices per entity
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
		pendingMods:    make(map[EntityID][]int),
	}
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0
}

func (q *opQueue) EnqueueCreate(amount int) {
	q.createOps = append(q.createOps, operation{
		typ:    opCreate,
		amount: amount,
	})
}

func (q *opQueue) EnqueueDestroy(entities []EntityID) {
	// Filter out already queued entities
	var newEntities []EntityID
	for _, id := range entities {
		if _, exists := q.pendingDestroy[id]; exists {
			continue
		}
		newEntities = append(newEntities, id)
		q.pendingDestroy[id] = struct{}{}

		// Pending attachments for a destroyed entity become no-ops
		for _, idx := range q.pendingMods[id] {
			q.componentOps[idx].typ = opNone
		}
		delete(q.pendingMods, id)
	}

	if len(newEntities) > 0 {
		q.destroyOps = append(q.destroyOps, operation{
			typ:      opDestroy,
			entities: newEntities,
		})
	}
}

func (q *opQueue) EnqueueComponentOp(id EntityID, comp Component, raw []byte) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[id]; isDestroyed {
		return
	}

	// The latest value for the same component wins
	typ := comp.meta().typ
	for _, idx := range q.pendingMods[id] {
		if q.componentOps[idx].component.meta().typ == typ {
			q.componentOps[idx].raw = raw
			return
		}
	}

	q.pendingMods[id] = append(q.pendingMods[id], len(q.componentOps))
	q.componentOps = append(q.componentOps, operation{
		typ:       opAddComponent,
		entities:  []EntityID{id},
		component: comp,
		raw:       raw,
	})
}

// take hands out the queued operations and leaves the queue empty
func (q *opQueue) take() (creates, components, destroys []operation) {
	creates, components, destroys = q.createOps, q.componentOps, q.destroyOps
	q.createOps, q.componentOps, q.destroyOps = nil, nil, nil
	clear(q.pendingDestroy)
	clear(q.pendingMods)
	return creates, components, destroys
}

// processOperationQueue applies deferred operations: creates first, then
// component attachments, destroys last. Failures are logged and skipped.
func (w *world) processOperationQueue() {
	if w.opQueue.empty() {
		return
	}
	creates, components, destroys := w.opQueue.take()

	for _, op := range creates {
		if _, err := w.NewEntities(op.amount); err != nil {
			w.logger.Warn("queued entity creation failed", bark.KeyOperation, "create", "amount", op.amount, bark.KeyError, err)
		}
	}

	for _, op := range components {
		if op.typ != opAddComponent {
			continue
		}
		id := op.entities[0]
		// Verify the entity wasn't removed after the op was queued
		if !w.Alive(id) {
			w.logger.Debug("dropping queued component for dead entity",
				bark.KeyOperation, "attach",
				"entity", id,
				bark.KeyComponent, componentName(op.component),
			)
			continue
		}
		if err := w.addComponent(id, op.component, op.raw); err != nil {
			w.logger.Warn("queued component attach failed",
				bark.KeyOperation, "attach",
				"entity", id,
				bark.KeyComponent, componentName(op.component),
				bark.KeyError, err,
			)
		}
	}

	for _, op := range destroys {
		for _, id := range op.entities {
			if err := w.RemoveEntity(id); err != nil {
				w.logger.Warn("queued entity removal failed", bark.KeyOperation, "remove", "entity", id, bark.KeyError, err)
			}
		}
	}
}
