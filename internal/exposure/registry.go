package exposure

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/maxviazov/paginater/internal/pagination"
)

// Registry maps type names to declared Types. Types are registered during setup and looked up
// afterwards; both are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]*Type
	paging *pagination.Config
}

// NewRegistry creates an empty registry. Types registered without a parent fall back to root
// for their paging settings; root may be nil.
func NewRegistry(root *pagination.Config) *Registry {
	return &Registry{types: make(map[string]*Type), paging: root}
}

// Register declares a new type. parent may be nil; otherwise the type inherits the parent's
// exposures and paging settings.
func (r *Registry) Register(name string, parent *Type, settings pagination.Settings) (*Type, error) {
	if name == "" {
		return nil, ErrEmptyTypeName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateType, name)
	}
	base := r.paging
	if parent != nil {
		base = parent.paging
	}
	t := &Type{
		name:   name,
		parent: parent,
		paging: pagination.NewConfig(base, settings),
		index:  make(map[string]int),
	}
	r.types[name] = t
	return t, nil
}

// MustRegister is Register for package-level setup; it panics on error.
func (r *Registry) MustRegister(name string, parent *Type, settings pagination.Settings) *Type {
	t, err := r.Register(name, parent, settings)
	if err != nil {
		panic(err)
	}
	return t
}

func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names lists registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Type is a named set of exposures with optional inheritance.
// Declarations are accepted until the merged exposure list is first resolved.
type Type struct {
	name   string
	parent *Type
	paging *pagination.Config

	mu     sync.Mutex
	own    []Exposure
	index  map[string]int
	sealed bool

	once   sync.Once
	merged []Exposure
}

func (t *Type) Name() string { return t.name }

func (t *Type) Parent() *Type { return t.parent }

// Paging returns the per-type paging config.
func (t *Type) Paging() *pagination.Config { return t.paging }

// Expose declares one exposure per name. Re-declaring a name replaces it in place.
func (t *Type) Expose(names []string, opts ...Option) error {
	var d declaration
	for _, opt := range opts {
		opt(&d)
	}
	if err := d.validate(names); err != nil {
		return fmt.Errorf("%s %v: %w", t.name, names, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return fmt.Errorf("%s: %w", t.name, ErrTypeSealed)
	}
	for _, name := range names {
		e := d.exposure(name)
		if i, ok := t.index[name]; ok {
			t.own[i] = e
			continue
		}
		t.index[name] = len(t.own)
		t.own = append(t.own, e)
	}
	return nil
}

// MustExpose is Expose for package-level setup; it panics on error.
func (t *Type) MustExpose(names []string, opts ...Option) *Type {
	if err := t.Expose(names, opts...); err != nil {
		panic(err)
	}
	return t
}

// Exposures returns the merged exposure list: inherited entries in the parent's order, overridden
// in place by this type's declarations, then this type's new names in declaration order.
// The merge runs once; the type and its ancestors accept no further declarations afterwards.
func (t *Type) Exposures() []Exposure {
	return slices.Clone(t.resolved())
}

func (t *Type) resolved() []Exposure {
	t.once.Do(func() {
		var inherited []Exposure
		if t.parent != nil {
			inherited = t.parent.resolved()
		}

		t.mu.Lock()
		t.sealed = true
		own := t.own
		t.mu.Unlock()

		merged := make([]Exposure, 0, len(inherited)+len(own))
		pos := make(map[string]int, len(inherited)+len(own))
		for _, e := range inherited {
			pos[e.name] = len(merged)
			merged = append(merged, e)
		}
		for _, e := range own {
			if i, ok := pos[e.name]; ok {
				merged[i] = e
				continue
			}
			pos[e.name] = len(merged)
			merged = append(merged, e)
		}
		t.merged = merged
	})
	return t.merged
}

// Represent binds subject and opts to this type.
func (t *Type) Represent(subject any, opts Options) *Entity {
	return &Entity{typ: t, subject: subject, options: opts}
}

// RepresentEach binds every element of subjects.
func (t *Type) RepresentEach(subjects []any, opts Options) []*Entity {
	out := make([]*Entity, len(subjects))
	for i, s := range subjects {
		out[i] = t.Represent(s, opts)
	}
	return out
}
