package silo

import (
	"hash/fnv"
	"reflect"
	"strconv"
)

// Fingerprint identifies a component type by a 64-bit hash of its declared name
type Fingerprint uint64

// FingerprintFunc hashes a fully-qualified type name
type FingerprintFunc func(name string) uint64

// ArchetypeKey is the XOR-fold of the fingerprints of an archetype's components
type ArchetypeKey uint64

// VoidKey is the key of the archetype holding entities without components
const VoidKey ArchetypeKey = 0

// DefaultFingerprint is 64-bit FNV-1a
func DefaultFingerprint(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// FingerprintOf returns the unresolved fingerprint of T using DefaultFingerprint.
// A world may assign a different value when T collides with another registered type,
// see World.FingerprintOf.
func FingerprintOf[T any]() Fingerprint {
	return Fingerprint(DefaultFingerprint(qualifiedName(reflect.TypeFor[T]())))
}

// With folds a component fingerprint into the key. Folding the same
// fingerprint twice removes it again.
func (k ArchetypeKey) With(f Fingerprint) ArchetypeKey {
	return k ^ ArchetypeKey(f)
}

func qualifiedName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// probe yields the candidate fingerprints for name, the plain hash first
// followed by salted variants.
func probe(hash FingerprintFunc, name string, attempt int) Fingerprint {
	if attempt == 0 {
		return Fingerprint(hash(name))
	}
	return Fingerprint(hash(name + "#" + strconv.Itoa(attempt)))
}
