package model

import "sort"

// SdkType identifies a kind of SDK, e.g. "JavaSDK".
type SdkType string

// JavaSdkType is the SDK type used when a type id is unknown.
const JavaSdkType SdkType = "JavaSDK"

// SdkReference names an SDK that is resolved lazily against the
// application-level SDK table.
type SdkReference struct {
	Name string
	Type SdkType
}

// SdkReferencesTable holds at most one reference per SDK type.
type SdkReferencesTable struct {
	refs map[SdkType]SdkReference
}

// NewSdkReferencesTable creates an empty table.
func NewSdkReferencesTable() *SdkReferencesTable {
	return &SdkReferencesTable{refs: make(map[SdkType]SdkReference)}
}

// Set binds the reference for its type.
func (t *SdkReferencesTable) Set(ref SdkReference) {
	t.refs[ref.Type] = ref
}

// Get returns the reference bound for typ.
func (t *SdkReferencesTable) Get(typ SdkType) (SdkReference, bool) {
	ref, ok := t.refs[typ]
	return ref, ok
}

// All returns the references sorted by type.
func (t *SdkReferencesTable) All() []SdkReference {
	out := make([]SdkReference, 0, len(t.refs))
	for _, r := range t.refs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
