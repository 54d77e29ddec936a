package silo

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         Operation
	children   []QueryNode
	components []Component
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, components []Component) *compositeNode {
	return &compositeNode{
		op:         op,
		children:   make([]QueryNode, 0),
		components: components,
	}
}

// nodeMask marks the bits of the node's registered components. Unregistered
// components can never be present in an archetype and are counted instead.
func (n *compositeNode) nodeMask(w *world) (nodeMask mask.Mask, marked, unregistered int) {
	for _, comp := range n.components {
		info, ok := w.registry.lookup(comp)
		if !ok {
			unregistered++
			continue
		}
		nodeMask.Mark(info.bit)
		marked++
	}
	return nodeMask, marked, unregistered
}

func (n *compositeNode) Evaluate(archetype Archetype, w World) bool {
	nodeMask, marked, unregistered := n.nodeMask(w.(*world))
	archeMask := archetype.Mask()

	switch n.op {
	case OpAnd:
		if unregistered > 0 || !archeMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(archetype, w) {
				return false
			}
		}
		return true

	case OpOr:
		if marked > 0 && archeMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(archetype, w) {
				return true
			}
		}
		return false

	case OpNot:
		for _, child := range n.children {
			if child.Evaluate(archetype, w) {
				return false
			}
		}
		return marked == 0 || archeMask.ContainsNone(nodeMask)
	}
	return false
}

func (q *query) And(items ...interface{}) QueryNode {
	return q.node(OpAnd, items...)
}

func (q *query) Or(items ...interface{}) QueryNode {
	return q.node(OpOr, items...)
}

func (q *query) Not(items ...interface{}) QueryNode {
	return q.node(OpNot, items...)
}

func (q *query) node(op Operation, items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(op, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) processItems(items ...interface{}) ([]Component, []QueryNode) {
	components := make([]Component, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}

	return components, children
}

func (q *query) Evaluate(archetype Archetype, w World) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(archetype, w)
}
