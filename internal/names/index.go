package names

import "strings"

// Ref is one canonical dataset entry: a stable ID and its display name.
type Ref struct {
	ID   int
	Name string
}

// Index is the fuzzy lookup table built once per run from the canonical
// Pokémon list. It is immutable after construction and therefore safe to
// read from multiple goroutines.
type Index struct {
	nameToID map[string]int
	idToName map[int]string
}

// BuildIndex generates the variant set of every record and inserts each
// variant into the lookup table. Insertion is first-write-wins: when two
// Pokémon normalize to the same variant the later registration is silently
// dropped. Collisions are rare post-normalization, but this does mean the
// bare "nidoran" key belongs to whichever gender form appears first in the
// canonical list.
func BuildIndex(refs []Ref) *Index {
	idx := &Index{
		nameToID: make(map[string]int, len(refs)*8),
		idToName: make(map[int]string, len(refs)),
	}
	for _, r := range refs {
		for _, v := range Variants(r.Name) {
			if _, taken := idx.nameToID[v]; !taken {
				idx.nameToID[v] = r.ID
			}
		}
		if _, taken := idx.idToName[r.ID]; !taken {
			idx.idToName[r.ID] = r.Name
		}
	}
	return idx
}

// Resolve maps text to a canonical ID by probing the index with the text's
// variant set, in generation order. It never fails hard: a miss returns
// ok=false and the caller decides whether that is worth a warning.
func (idx *Index) Resolve(text string) (int, bool) {
	for _, v := range Variants(text) {
		if id, ok := idx.nameToID[v]; ok {
			return id, true
		}
	}
	return 0, false
}

// NameOf returns the canonical display name for an ID.
func (idx *Index) NameOf(id int) (string, bool) {
	name, ok := idx.idToName[id]
	return name, ok
}

// Len returns the number of distinct variants in the index.
func (idx *Index) Len() int {
	return len(idx.nameToID)
}

// Sentinel IDs for synthetic entries that appear in scraped gift, trade
// and quest tables but are not Pokémon in the canonical list.
const (
	EggID    = -1
	FossilID = -2
)

// sentinelCases maps lowercase-trimmed scraped text to sentinel IDs.
// sentinelOrder fixes the containment-scan order so resolution stays
// deterministic.
var sentinelCases = map[string]int{
	"egg":          EggID,
	"mystery egg":  EggID,
	"bad egg":      EggID,
	"fossil":       FossilID,
	"old amber":    FossilID,
	"dome fossil":  FossilID,
	"helix fossil": FossilID,
}

var sentinelOrder = []string{
	"mystery egg", "bad egg", "egg",
	"old amber", "dome fossil", "helix fossil", "fossil",
}

// typoFixes corrects recurring wiki typos by mapping them to the spelling
// used in the canonical list, then re-probing the index.
var typoFixes = map[string]string{
	"farfetchd":  "Farfetch'd",
	"mr mime":    "Mr. Mime",
	"mime jr":    "Mime Jr.",
	"type null":  "Type: Null",
	"flabebe":    "Flabébé",
	"nidoran(f)": "Nidoran♀",
	"nidoran(m)": "Nidoran♂",
}

// ResolveLoose is the overlay used by the gift/trade/quest scrapers: the
// normal variant lookup first, then the hard-coded exception table with
// exact matches, typo corrections, and finally substring containment as a
// last resort before giving up.
func (idx *Index) ResolveLoose(text string) (int, bool) {
	if id, ok := idx.Resolve(text); ok {
		return id, true
	}
	key := strings.ToLower(strings.TrimSpace(text))
	if id, ok := sentinelCases[key]; ok {
		return id, true
	}
	if fixed, ok := typoFixes[key]; ok {
		if id, ok := idx.Resolve(fixed); ok {
			return id, true
		}
	}
	for _, k := range sentinelOrder {
		if strings.Contains(key, k) {
			return sentinelCases[k], true
		}
	}
	return 0, false
}
