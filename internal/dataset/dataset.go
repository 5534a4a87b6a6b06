// Package dataset loads the canonical {id, name} Pokémon list that drives
// both the sprite pipeline and the name resolver. JSON is the native
// format; CSV and XLSX are accepted for hand-maintained lists, with
// flexible column mapping and case-insensitive header recognition.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fusiondex/dexbuild/internal/names"
	"github.com/fusiondex/dexbuild/internal/sprite"
)

// Pokemon is one canonical dataset entry. IDs may be negative for
// synthetic entries such as the egg sentinel.
type Pokemon struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Refs converts the list to the resolver's input type.
func Refs(list []Pokemon) []names.Ref {
	refs := make([]names.Ref, len(list))
	for i, p := range list {
		refs[i] = names.Ref{ID: p.ID, Name: p.Name}
	}
	return refs
}

// Requests converts the list to the sprite loader's input type.
func Requests(list []Pokemon) []sprite.Request {
	reqs := make([]sprite.Request, len(list))
	for i, p := range list {
		reqs[i] = sprite.Request{ID: p.ID, Name: p.Name}
	}
	return reqs
}

// Load reads a canonical list, dispatching on the file extension.
func Load(path string) ([]Pokemon, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

// LoadJSON reads the native JSON dataset: an array of {id, name} objects.
func LoadJSON(path string) ([]Pokemon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var list []Pokemon
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return list, nil
}
