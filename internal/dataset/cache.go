package dataset

// Cache memoizes parsed canonical lists by path for the duration of one
// script run. It replaces the module-level memo the original build scripts
// kept: construct one per invocation, pass it to whatever needs the data,
// and clear it when the run ends. Not safe for concurrent use; the build
// scripts load all inputs before any parallel work starts.
type Cache struct {
	entries map[string][]Pokemon
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]Pokemon)}
}

// Get returns the parsed list for path, loading it on first access.
func (c *Cache) Get(path string) ([]Pokemon, error) {
	if list, ok := c.entries[path]; ok {
		return list, nil
	}
	list, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.entries[path] = list
	return list, nil
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.entries = make(map[string][]Pokemon)
}
