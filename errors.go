package silo

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotFound is matched by every lookup failure (errors.Is)
var ErrNotFound = errors.New("silo: not found")

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked"
}

type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %s", componentName(e.Component))
}

type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %s", componentName(e.Component))
}

func (e ComponentNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type EntityNotFoundError struct {
	ID EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity not found: %v", e.ID)
}

func (e EntityNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type RegistryFullError struct {
	Max int
}

func (e RegistryFullError) Error() string {
	return fmt.Sprintf("component registry at maximum capacity (%d)", e.Max)
}

type FingerprintCollisionError struct {
	Type     reflect.Type
	Attempts int
}

func (e FingerprintCollisionError) Error() string {
	return fmt.Sprintf("no unique fingerprint for %v after %d attempts", e.Type, e.Attempts)
}

// The following are contract violations and are raised with panic.

type RowIndexError struct {
	Row, Len int
}

func (e RowIndexError) Error() string {
	return fmt.Sprintf("row %d out of range [0, %d)", e.Row, e.Len)
}

type ElementSizeError struct {
	Want, Got int
}

func (e ElementSizeError) Error() string {
	return fmt.Sprintf("element size mismatch: column stores %d bytes, accessor uses %d", e.Want, e.Got)
}

type ComponentKindError struct {
	Type reflect.Type
	Kind reflect.Kind
}

func (e ComponentKindError) Error() string {
	return fmt.Sprintf("component %v is not plain data: contains %v", e.Type, e.Kind)
}

type ViewAccessError struct {
	Component Component
	Write     bool
}

func (e ViewAccessError) Error() string {
	if e.Write {
		return fmt.Sprintf("view grants no write access to %s", componentName(e.Component))
	}
	return fmt.Sprintf("view does not include %s", componentName(e.Component))
}
