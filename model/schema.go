package model

// Canonical attribute names. These are the keys of the Attributes mapping and
// the names accepted by entity accessors.
const (
	AttrCommonName      = "common-name"
	AttrSynonyms        = "synonyms"
	AttrDBLinks         = "dblinks"
	AttrParents         = "parents"
	AttrInstances       = "instances"
	AttrInChI           = "inchi"
	AttrMolecularWeight = "molecular-weight"
	AttrGibbs0          = "gibbs-0"
	AttrReactionsRight  = "reactions-right"
	AttrReactionsLeft   = "reactions-left"
	AttrReactions       = "reactions"
	AttrPathways        = "pathways"
	AttrSuperPathways   = "super-pathways"
	AttrSpecies         = "species"
	AttrTaxonomicRange  = "taxonomic-range"
)

// AttrDef describes one attribute of an entity kind: its shape, whether a
// scalar carries a numeric value, and where it is found in a ptools-xml
// payload.
type AttrDef struct {
	Name  string
	Type  AttrType
	Float bool

	// elem is the payload element holding the attribute. For reference lists,
	// child names the element carrying the target frameid; an empty child
	// matches any element. Definitions without an elem are views derived from
	// other attributes at parse time.
	elem  string
	child string
}

// Attributes common to every entity kind.
var baseSchema = []AttrDef{
	{Name: AttrCommonName, Type: AttrScalar, elem: "common-name"},
	{Name: AttrSynonyms, Type: AttrScalarList, elem: "synonym"},
	{Name: AttrDBLinks, Type: AttrScalarList, elem: "dblink"},
	{Name: AttrParents, Type: AttrRefList, elem: "parent"},
	{Name: AttrInstances, Type: AttrRefList, elem: "instance"},
}

var kindSchemas = map[Kind][]AttrDef{
	KindCompound: {
		{Name: AttrInChI, Type: AttrScalar, elem: "inchi"},
		{Name: AttrMolecularWeight, Type: AttrScalar, Float: true, elem: "molecular-weight"},
		{Name: AttrGibbs0, Type: AttrScalar, Float: true, elem: "gibbs-0"},
		{Name: AttrReactionsRight, Type: AttrRefList, elem: "appears-in-right-side-of", child: "Reaction"},
		{Name: AttrReactionsLeft, Type: AttrRefList, elem: "appears-in-left-side-of", child: "Reaction"},
		{Name: AttrReactions, Type: AttrRefList},
	},
	KindReaction: {
		{Name: AttrPathways, Type: AttrRefList, elem: "in-pathway", child: "Pathway"},
	},
	KindEnzymaticReaction: {
		{Name: AttrPathways, Type: AttrRefList, elem: "in-pathway", child: "Pathway"},
	},
	KindPathway: {
		{Name: AttrSpecies, Type: AttrRefList, elem: "species", child: "Organism"},
		{Name: AttrSuperPathways, Type: AttrRefList, elem: "super-pathways", child: "Pathway"},
		{Name: AttrTaxonomicRange, Type: AttrRefList, elem: "taxonomic-range", child: "Organism"},
	},
	KindProtein:  {},
	KindGene:     {},
	KindOrganism: {},
}

// Schema returns the attribute definitions for a kind, base attributes first.
// The unknown kind has only the base attributes.
func Schema(kind Kind) []AttrDef {
	defs := make([]AttrDef, 0, len(baseSchema)+len(kindSchemas[kind]))
	defs = append(defs, baseSchema...)
	defs = append(defs, kindSchemas[kind]...)
	return defs
}

// LookupAttr finds the definition of the named attribute for a kind.
func LookupAttr(kind Kind, name string) (AttrDef, bool) {
	for _, def := range baseSchema {
		if def.Name == name {
			return def, true
		}
	}
	for _, def := range kindSchemas[kind] {
		if def.Name == name {
			return def, true
		}
	}
	return AttrDef{}, false
}

// KnownKind maps a payload schema element name to its Kind.
func KnownKind(name string) (Kind, bool) {
	switch Kind(name) {
	case KindCompound, KindPathway, KindReaction, KindEnzymaticReaction,
		KindProtein, KindGene, KindOrganism:
		return Kind(name), true
	}
	return KindUnknown, false
}
