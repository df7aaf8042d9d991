package model

import (
	"strings"
)

// Kind identifies the schema of a database record. An entity's kind is not
// known until its record has been retrieved, so entities that exist only as
// reference targets report KindUnknown.
type Kind string

const (
	KindUnknown           Kind = ""
	KindCompound          Kind = "Compound"
	KindPathway           Kind = "Pathway"
	KindReaction          Kind = "Reaction"
	KindEnzymaticReaction Kind = "EnzymaticReaction"
	KindProtein           Kind = "Protein"
	KindGene              Kind = "Gene"
	KindOrganism          Kind = "Organism"
)

// Detail is the level of detail requested from the web service. Low detail
// responses carry only base attributes; full detail responses also carry the
// relational reference lists.
type Detail string

const (
	DetailNone Detail = "none"
	DetailLow  Detail = "low"
	DetailFull Detail = "full"
)

// ValidDetail reports whether d is a detail level understood by the service.
func ValidDetail(d Detail) bool {
	switch d {
	case DetailNone, DetailLow, DetailFull:
		return true
	}
	return false
}

// Identity uniquely identifies one database record as the pair of organism
// database and frame identifier. Identity is comparable and is the key for
// both the in-memory registry and the on-disk cache.
type Identity struct {
	OrgID string
	ID    string
}

// NewIdentity creates an Identity. Organism identifiers are case-insensitive
// upstream and are normalized to upper case here so that equivalent
// identities always compare equal.
func NewIdentity(orgID, id string) Identity {
	return Identity{
		OrgID: strings.ToUpper(orgID),
		ID:    id,
	}
}

func (i Identity) String() string {
	return i.OrgID + ":" + i.ID
}

// AttrType says how an attribute's value is shaped.
type AttrType int

const (
	// AttrScalar is a single value.
	AttrScalar AttrType = iota
	// AttrScalarList is a list of plain values.
	AttrScalarList
	// AttrRefList is an ordered list of frame identifiers referencing other
	// entities in the same organism database.
	AttrRefList
)

// Value is one attribute payload. Exactly one of Scalar or List is meaningful
// depending on Type. Reference lists keep the ordering and multiplicity of
// the source payload.
type Value struct {
	Type   AttrType `json:"type"`
	Scalar string   `json:"scalar,omitempty"`
	List   []string `json:"list,omitempty"`
}

// Attributes is the raw attribute mapping of one record. It is populated
// incrementally as payloads at increasing detail levels are merged in.
type Attributes map[string]Value

// Scalar returns the named scalar value, if present.
func (a Attributes) Scalar(name string) (string, bool) {
	v, ok := a[name]
	if !ok || v.Type != AttrScalar {
		return "", false
	}
	return v.Scalar, true
}

// List returns the named scalar list, if present.
func (a Attributes) List(name string) ([]string, bool) {
	v, ok := a[name]
	if !ok || v.Type != AttrScalarList {
		return nil, false
	}
	return v.List, true
}

// Refs returns the named reference id list, if present.
func (a Attributes) Refs(name string) ([]string, bool) {
	v, ok := a[name]
	if !ok || v.Type != AttrRefList {
		return nil, false
	}
	return v.List, true
}

// Merge copies all entries of b into a, overwriting entries with the same
// name. Later payloads are fetched at equal or higher detail, so theirs win.
func (a Attributes) Merge(b Attributes) {
	for name, v := range b {
		a[name] = v
	}
}

// Clone returns a deep copy of a.
func (a Attributes) Clone() Attributes {
	c := make(Attributes, len(a))
	for name, v := range a {
		if v.List != nil {
			v.List = append([]string(nil), v.List...)
		}
		c[name] = v
	}
	return c
}
