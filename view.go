package silo

import "github.com/TheBitDrifter/mask"

type access struct {
	component Component
	write     bool
}

func (a access) Component() Component {
	return a.component
}

func (a access) Writable() bool {
	return a.write
}

type viewItem struct {
	component Component
	write     bool
}

// View is the set of components a query or lookup projects, each with read
// or write access. Views are immutable once built apart from Where.
type View struct {
	items  []viewItem
	filter QueryNode
}

func newView(accesses ...Access) *View {
	v := &View{items: make([]viewItem, 0, len(accesses))}
	for _, a := range accesses {
		if i, ok := v.indexOf(a.Component()); ok {
			v.items[i].write = v.items[i].write || a.Writable()
			continue
		}
		v.items = append(v.items, viewItem{component: a.Component(), write: a.Writable()})
	}
	return v
}

// Where restricts the view to archetypes that also satisfy node
func (v *View) Where(node QueryNode) *View {
	v.filter = node
	return v
}

func (v *View) Len() int {
	return len(v.items)
}

func (v *View) indexOf(c Component) (int, bool) {
	typ := c.meta().typ
	for i, item := range v.items {
		if item.component.meta().typ == typ {
			return i, true
		}
	}
	return -1, false
}

// mask returns the signature bits of the view's components. ok is false when
// a component was never registered in w, in which case nothing can match.
func (v *View) mask(w *world) (m mask.Mask, ok bool) {
	for _, item := range v.items {
		info, found := w.registry.lookup(item.component)
		if !found {
			return m, false
		}
		m.Mark(info.bit)
	}
	return m, true
}

// bind resolves one column of arch per view item into dst. The first
// component arch lacks is returned as missing.
func (v *View) bind(w *world, arch *archetype, dst []*column) (cols []*column, missing Component) {
	cols = dst[:0]
	for _, item := range v.items {
		info, found := w.registry.lookup(item.component)
		if !found {
			return nil, item.component
		}
		col, found := arch.columns[info.fingerprint]
		if !found {
			return nil, item.component
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (v *View) column(c Component, columns []*column, write bool) *column {
	i, ok := v.indexOf(c)
	if !ok {
		panic(ViewAccessError{Component: c})
	}
	if write && !v.items[i].write {
		panic(ViewAccessError{Component: c, Write: true})
	}
	return columns[i]
}

// Row is one entity's projection through a view. It stays valid until the
// next structural change of its world.
type Row struct {
	view    *View
	arch    *archetype
	columns []*column
	index   int
}

func (r Row) Entity() EntityID {
	return r.arch.entities[r.index]
}

func (r Row) Index() int {
	return r.index
}

func (r Row) Archetype() Archetype {
	return r.arch
}
