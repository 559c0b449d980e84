package role

// Store exposes role catalog retrieval for HTTP handlers.
type Store interface {
	List() []Role
	FindByID(id string) (Role, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Role
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied roles.
func NewMemoryStore(items []Role) *MemoryStore {
	return &MemoryStore{items: append([]Role(nil), items...)}
}

// List returns the catalog.
func (s *MemoryStore) List() []Role {
	return append([]Role(nil), s.items...)
}

// FindByID looks up a role by identifier.
func (s *MemoryStore) FindByID(id string) (Role, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Role{}, false
}
