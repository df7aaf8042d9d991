package biocyc

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/biocyc/go-biocyc/cachestore"
	"github.com/biocyc/go-biocyc/model"
)

// Entity is the in-memory object for one database record. Entities are
// created by the registry and live for the process lifetime; all state is
// populated lazily on first access. An Entity is safe for concurrent use.
type Entity struct {
	ident model.Identity
	db    *Database

	mu     sync.Mutex
	kind   model.Kind
	attrs  model.Attributes
	loaded bool // a payload has been merged
	full   bool // a full-detail payload has been merged

	// resolved memoizes materialized relational attributes. Entries are
	// never invalidated; once resolved, an attribute is stable for the life
	// of the instance.
	resolved map[string][]*Entity
}

// Identity returns the entity's immutable identity.
func (e *Entity) Identity() model.Identity {
	return e.ident
}

// ID returns the frame identifier.
func (e *Entity) ID() string {
	return e.ident.ID
}

// OrgID returns the organism database identifier.
func (e *Entity) OrgID() string {
	return e.ident.OrgID
}

// Kind returns the entity's kind without fetching. It is KindUnknown until
// the record has been loaded.
func (e *Entity) Kind() model.Kind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.kind
}

// URL returns the human-browsable web page for the entity.
func (e *Entity) URL() string {
	return model.EntityURL(e.ident)
}

// String returns the common name when known, otherwise the identifier. It
// never fetches.
func (e *Entity) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if name, ok := e.attrs.Scalar(model.AttrCommonName); ok {
		return name
	}
	return e.ident.ID
}

// Load ensures the entity's base attributes are populated, reading from the
// cache when fresh and otherwise fetching through the throttle.
func (e *Entity) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLocked(ctx, e.db.detail)
}

// Scalar returns the named scalar attribute. The second return is false when
// the record does not carry the attribute.
func (e *Entity) Scalar(ctx context.Context, name string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scalarLocked(ctx, name)
}

// Float returns the named scalar attribute as a number.
func (e *Entity) Float(ctx context.Context, name string) (float64, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok, err := e.scalarLocked(ctx, name)
	if err != nil || !ok {
		return 0, false, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("attribute %s of %s is not numeric: %w", name, e.ident, err)
	}
	return f, true, nil
}

// List returns the named scalar-list attribute.
func (e *Entity) List(ctx context.Context, name string) ([]string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.loadLocked(ctx, e.db.detail); err != nil {
		return nil, false, err
	}
	def, ok := model.LookupAttr(e.kind, name)
	if !ok || def.Type != model.AttrScalarList {
		return nil, false, fmt.Errorf("%s on %s: %w", name, e.ident, ErrUnknownAttribute)
	}
	v, ok, err := e.ensureAttrLocked(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}
	return append([]string(nil), v.List...), true, nil
}

// Related materializes the named relational attribute into entities,
// resolving each referenced identifier through the registry with this
// entity's organism. Resolution itself performs no network traffic; at most
// one fetch happens, to obtain this entity's own raw identifier list. The
// result is memoized: repeat calls return the same instances with no I/O.
// Ordering and multiplicity of the source payload are preserved.
func (e *Entity) Related(ctx context.Context, name string) ([]*Entity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ents, ok := e.resolved[name]; ok {
		return append([]*Entity(nil), ents...), nil
	}
	ids, err := e.relatedIDsLocked(ctx, name)
	if err != nil {
		return nil, err
	}
	ents := make([]*Entity, len(ids))
	for i, id := range ids {
		ents[i] = e.db.registry.Resolve(model.NewIdentity(e.ident.OrgID, id))
	}
	if e.resolved == nil {
		e.resolved = make(map[string][]*Entity)
	}
	e.resolved[name] = ents
	return append([]*Entity(nil), ents...), nil
}

// RelatedIDs returns the raw identifier list of the named relational
// attribute without constructing or resolving any referenced entity.
func (e *Entity) RelatedIDs(ctx context.Context, name string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids, err := e.relatedIDsLocked(ctx, name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), ids...), nil
}

// Name returns the record's common name. When the record has no common name
// the last synonym stands in for it.
func (e *Entity) Name(ctx context.Context) (string, bool, error) {
	return e.Scalar(ctx, model.AttrCommonName)
}

// Synonyms returns the record's synonyms.
func (e *Entity) Synonyms(ctx context.Context) ([]string, bool, error) {
	return e.List(ctx, model.AttrSynonyms)
}

// InChI returns a compound's InChI descriptor.
func (e *Entity) InChI(ctx context.Context) (string, bool, error) {
	return e.Scalar(ctx, model.AttrInChI)
}

// MolecularWeight returns a compound's molecular weight in daltons.
func (e *Entity) MolecularWeight(ctx context.Context) (float64, bool, error) {
	return e.Float(ctx, model.AttrMolecularWeight)
}

// Gibbs0 returns a compound's Gibbs free energy of formation.
func (e *Entity) Gibbs0(ctx context.Context) (float64, bool, error) {
	return e.Float(ctx, model.AttrGibbs0)
}

// DBLinks returns the record's cross-references into external databases,
// keyed by database name.
func (e *Entity) DBLinks(ctx context.Context) (map[string]string, error) {
	links, ok, err := e.List(ctx, model.AttrDBLinks)
	if err != nil || !ok {
		return nil, err
	}
	m := make(map[string]string, len(links))
	for _, link := range links {
		db, oid := model.SplitDBLink(link)
		m[db] = oid
	}
	return m, nil
}

// Parents returns the record's parent classes.
func (e *Entity) Parents(ctx context.Context) ([]*Entity, error) {
	return e.Related(ctx, model.AttrParents)
}

// Instances returns the record's instances.
func (e *Entity) Instances(ctx context.Context) ([]*Entity, error) {
	return e.Related(ctx, model.AttrInstances)
}

// Reactions returns the reactions a compound appears in, right side first,
// as in the source record.
func (e *Entity) Reactions(ctx context.Context) ([]*Entity, error) {
	return e.Related(ctx, model.AttrReactions)
}

// Pathways returns the pathways a reaction takes part in.
func (e *Entity) Pathways(ctx context.Context) ([]*Entity, error) {
	return e.Related(ctx, model.AttrPathways)
}

// SuperPathways returns the pathways containing a pathway.
func (e *Entity) SuperPathways(ctx context.Context) ([]*Entity, error) {
	return e.Related(ctx, model.AttrSuperPathways)
}

// Species returns the organisms a pathway occurs in.
func (e *Entity) Species(ctx context.Context) ([]*Entity, error) {
	return e.Related(ctx, model.AttrSpecies)
}

// TaxonomicRange returns the taxonomic range of a pathway.
func (e *Entity) TaxonomicRange(ctx context.Context) ([]*Entity, error) {
	return e.Related(ctx, model.AttrTaxonomicRange)
}

func (e *Entity) scalarLocked(ctx context.Context, name string) (string, bool, error) {
	if err := e.loadLocked(ctx, e.db.detail); err != nil {
		return "", false, err
	}
	def, ok := model.LookupAttr(e.kind, name)
	if !ok || def.Type != model.AttrScalar {
		return "", false, fmt.Errorf("%s on %s: %w", name, e.ident, ErrUnknownAttribute)
	}
	v, ok, err := e.ensureAttrLocked(ctx, name)
	if err != nil || !ok {
		return "", false, err
	}
	return v.Scalar, true, nil
}

func (e *Entity) relatedIDsLocked(ctx context.Context, name string) ([]string, error) {
	if err := e.loadLocked(ctx, e.db.detail); err != nil {
		return nil, err
	}
	def, ok := model.LookupAttr(e.kind, name)
	if !ok || def.Type != model.AttrRefList {
		return nil, fmt.Errorf("%s on %s: %w", name, e.ident, ErrUnknownAttribute)
	}
	v, ok, err := e.ensureAttrLocked(ctx, name)
	if err != nil || !ok {
		return nil, err
	}
	return v.List, nil
}

// ensureAttrLocked returns the named raw attribute, fetching the record if
// the attribute is not present yet. A record loaded below full detail is
// upgraded with one full-detail fetch before the attribute is considered
// absent. Absence is not an error; payloads simply omit attributes that do
// not apply.
func (e *Entity) ensureAttrLocked(ctx context.Context, name string) (model.Value, bool, error) {
	if v, ok := e.attrs[name]; ok {
		return v, true, nil
	}
	if err := e.loadLocked(ctx, e.db.detail); err != nil {
		return model.Value{}, false, err
	}
	if v, ok := e.attrs[name]; ok {
		return v, true, nil
	}
	if !e.full {
		if err := e.loadLocked(ctx, model.DetailFull); err != nil {
			return model.Value{}, false, err
		}
		if v, ok := e.attrs[name]; ok {
			return v, true, nil
		}
	}
	return model.Value{}, false, nil
}

// loadLocked populates raw attributes at the given detail level: cache fast
// path when a fresh record satisfies the request, otherwise one throttled
// fetch with write-back. It is a no-op when the entity already holds a
// payload of sufficient detail.
func (e *Entity) loadLocked(ctx context.Context, detail model.Detail) error {
	if e.loaded && (e.full || detail != model.DetailFull) {
		return nil
	}
	db := e.db

	rec, freshness := db.store.Read(e.ident)
	if freshness == cachestore.Fresh {
		e.mergeLocked(rec.Kind, rec.Attrs)
		e.loaded = true
		if rec.Detail == model.DetailFull {
			e.full = true
		}
		if e.full || detail != model.DetailFull {
			return nil
		}
		// Fresh record, but at lower detail than requested; upgrade over
		// the network.
	}

	if err := db.failedRecently(e.ident); err != nil {
		return err
	}
	if err := db.throttle.Acquire(ctx); err != nil {
		return err
	}
	kind, attrs, err := db.source.Fetch(ctx, e.ident, detail)
	if err != nil {
		if IsNotFound(err) {
			db.noteNotFound(e.ident)
		}
		return err
	}
	e.mergeLocked(kind, attrs)
	e.loaded = true
	if detail == model.DetailFull {
		e.full = true
	}

	recDetail := detail
	if e.full {
		recDetail = model.DetailFull
	}
	err = db.store.Write(e.ident, cachestore.Record{
		Kind:   e.kind,
		Detail: recDetail,
		Attrs:  e.attrs.Clone(),
	})
	if err != nil {
		// The cache is an optimization; a failed write-back only costs a
		// future refetch.
		log.Errorw("Cannot write cache record", "id", e.ident, "err", err)
	}
	return nil
}

func (e *Entity) mergeLocked(kind model.Kind, attrs model.Attributes) {
	if e.attrs == nil {
		e.attrs = make(model.Attributes, len(attrs))
	}
	e.attrs.Merge(attrs)
	if kind != model.KindUnknown {
		e.kind = kind
	}
}
