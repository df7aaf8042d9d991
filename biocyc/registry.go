package biocyc

import (
	"sync"

	"github.com/biocyc/go-biocyc/model"
)

// Registry is the identity map from (organism, id) to the single live Entity
// for that identity. It grows for the life of the process; evicting entries
// would break reference identity, and the reference databases served are
// bounded in practice.
type Registry struct {
	db *Database

	mu       sync.Mutex
	entities map[model.Identity]*Entity
}

func newRegistry(db *Database) *Registry {
	return &Registry{
		db:       db,
		entities: make(map[model.Identity]*Entity),
	}
}

// Resolve returns the Entity for ident, constructing an empty one bound to
// the identity if none exists yet. No attributes are populated here. A
// reference cycle that leads back to an identity being resolved therefore
// terminates: Resolve hands back the in-flight instance instead of
// recursing.
func (r *Registry) Resolve(ident model.Identity) *Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entities[ident]
	if !ok {
		e = &Entity{ident: ident, db: r.db}
		r.entities[ident] = e
	}
	return e
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entities)
}
