package silo

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// MaxComponentTypes is the number of distinct component types a single world
// can hold, one signature bit each.
const MaxComponentTypes = mask.MaxBits

const maxProbeAttempts = 32

type componentInfo struct {
	component   Component
	meta        *componentMeta
	fingerprint Fingerprint
	bit         uint32
}

// componentRegistry is the world's verified type table. Types are keyed by
// their reflect.Type; the resolved fingerprint is unique within the registry.
// Signature bits are the dense registration order of the world, independent
// of how many component tokens exist in the process.
type componentRegistry struct {
	schema        table.Schema
	hash          FingerprintFunc
	types         *indexCache[reflect.Type, *componentInfo]
	byFingerprint map[Fingerprint]*componentInfo
}

func newComponentRegistry(schema table.Schema, hash FingerprintFunc) *componentRegistry {
	if hash == nil {
		hash = DefaultFingerprint
	}
	return &componentRegistry{
		schema:        schema,
		hash:          hash,
		types:         newIndexCache[reflect.Type, *componentInfo](MaxComponentTypes),
		byFingerprint: make(map[Fingerprint]*componentInfo),
	}
}

func (r *componentRegistry) lookup(c Component) (*componentInfo, bool) {
	idx, ok := r.types.GetIndex(c.meta().typ)
	if !ok {
		return nil, false
	}
	return *r.types.GetItem(idx), true
}

func (r *componentRegistry) register(c Component) (*componentInfo, error) {
	if info, ok := r.lookup(c); ok {
		return info, nil
	}
	if r.types.Full() {
		return nil, RegistryFullError{Max: MaxComponentTypes}
	}
	m := c.meta()
	fp, ok := r.resolve(m.name)
	if !ok {
		return nil, FingerprintCollisionError{Type: m.typ, Attempts: maxProbeAttempts}
	}

	info := &componentInfo{
		component:   c,
		meta:        m,
		fingerprint: fp,
	}
	idx, err := r.types.Register(m.typ, info)
	if err != nil {
		return nil, err
	}
	info.bit = uint32(idx)
	r.schema.Register(c)
	r.byFingerprint[fp] = info
	return info, nil
}

// resolve finds a fingerprint for name that no other registered type holds.
// Zero is skipped because it would alias the void archetype key.
func (r *componentRegistry) resolve(name string) (Fingerprint, bool) {
	for attempt := range maxProbeAttempts {
		fp := probe(r.hash, name, attempt)
		if fp == 0 {
			continue
		}
		if _, taken := r.byFingerprint[fp]; taken {
			continue
		}
		return fp, true
	}
	return 0, false
}

func (r *componentRegistry) len() int {
	return r.types.Len()
}
