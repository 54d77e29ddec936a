package silo

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// Component represents a data attribute/state that can be attached to entities
// Components can be used to build views and queries
type Component interface {
	table.ElementType
	meta() *componentMeta
}

type componentMeta struct {
	typ  reflect.Type
	name string
	size uintptr
}

type componentType struct {
	table.ElementType
	m *componentMeta
}

func (c *componentType) meta() *componentMeta {
	return c.m
}

func newComponentType[T any]() *componentType {
	t := reflect.TypeFor[T]()
	checkPlain(t, t)
	return &componentType{
		ElementType: table.FactoryNewElementType[T](),
		m: &componentMeta{
			typ:  t,
			name: qualifiedName(t),
			size: t.Size(),
		},
	}
}

// checkPlain panics unless t can be copied and reinterpreted as raw bytes:
// booleans, numbers, and arrays or structs made of them.
func checkPlain(root, t reflect.Type) {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return
	case reflect.Array:
		checkPlain(root, t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			checkPlain(root, t.Field(i).Type)
		}
	default:
		panic(ComponentKindError{Type: root, Kind: t.Kind()})
	}
}

func componentName(c Component) string {
	if c == nil {
		return "<nil>"
	}
	return c.meta().name
}
