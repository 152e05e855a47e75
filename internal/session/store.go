package session

// Persisted blob keys. They match the keys the session has always been
// stored under, so an existing session file keeps working.
const (
	FiltersKey = "benefitFilters"
	ProfileKey = "veteranProfile"
)

// Store is the narrow persistence port the session manager writes through.
// The engine carries no ambient storage dependency; any keyed blob store
// will do.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// MemoryStore is an in-process Store used as the default and in tests.
type MemoryStore struct {
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)
	s.values[key] = copied
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	delete(s.values, key)
	return nil
}
