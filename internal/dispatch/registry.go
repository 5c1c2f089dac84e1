package dispatch

import "sort"

// Registry stores command descriptors by name. Registration happens once at
// startup; afterwards the table is read-only, so lookups need no locking.
type Registry struct {
	commands map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Descriptor)}
}

// Register adds a descriptor. A second registration under the same name
// fails with DuplicateCommandError.
func (r *Registry) Register(d *Descriptor) error {
	if _, exists := r.commands[d.Name]; exists {
		return &DuplicateCommandError{Name: d.Name}
	}
	r.commands[d.Name] = d
	return nil
}

// MustRegister registers every descriptor and panics on a duplicate name.
// For use at startup where a duplicate is a programming error.
func (r *Registry) MustRegister(ds ...*Descriptor) {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// Resolve returns the descriptor registered under name, or NotFoundError.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	d, ok := r.commands[name]
	if !ok {
		return nil, &NotFoundError{What: "command"}
	}
	return d, nil
}

// All returns every registered descriptor, sorted by name.
func (r *Registry) All() []*Descriptor {
	list := make([]*Descriptor, 0, len(r.commands))
	for _, d := range r.commands {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
