package sprite

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/fusiondex/dexbuild/internal/names"
)

// filenamePunct drops punctuation that never appears in sprite filenames.
var filenamePunct = strings.NewReplacer(".", "", "'", "", "’", "", ":", "")

// formKeywords are the trailing qualifier words of in-game form names.
// A name like "Lycanroc Midnight Form" drops its last two words to reach
// the base species.
var formKeywords = map[string]bool{
	"form":  true,
	"forme": true,
	"style": true,
	"cloak": true,
	"mode":  true,
	"size":  true,
}

// Locator resolves canonical Pokémon names to sprite files in a directory.
// Third-party sprite sets rarely cover every in-game form, so when the
// form-qualified filename is absent the locator retries with the base
// species name; a base-form sprite beats no sprite at all.
type Locator struct {
	dir  string
	exts []string
}

// NewLocator creates a Locator over a sprite directory. PNG is the only
// extension tried by default.
func NewLocator(dir string) *Locator {
	return &Locator{dir: dir, exts: []string{".png"}}
}

// Normalize converts a display name to the sprite filename convention:
// lowercase, hyphenated, gender symbols as -f/-m, punctuation and
// diacritics dropped.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "♀", "-f")
	s = strings.ReplaceAll(s, "♂", "-m")
	s = filenamePunct.Replace(names.Deaccent(s))
	return strcase.ToKebab(s)
}

// Find returns the filename (relative to the sprite directory) that best
// matches the given name: the fully form-qualified filename when present,
// otherwise the stripped base form. ok is false when neither exists.
func (l *Locator) Find(name string) (string, bool) {
	candidates := []string{Normalize(name)}
	if base := baseForm(name); base != "" {
		candidates = append(candidates, Normalize(base))
	}
	for _, stem := range candidates {
		for _, ext := range l.exts {
			fn := stem + ext
			if _, err := os.Stat(filepath.Join(l.dir, fn)); err == nil {
				return fn, true
			}
		}
	}
	return "", false
}

// Path returns the absolute path of a filename previously returned by Find.
func (l *Locator) Path(filename string) string {
	return filepath.Join(l.dir, filename)
}

// baseForm strips known form-suffix vocabulary from a name, returning the
// base species name or "" when the name carries no form qualifier.
func baseForm(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) >= 3 && formKeywords[strings.ToLower(fields[len(fields)-1])] {
		return strings.Join(fields[:len(fields)-2], " ")
	}
	// Rotom appliance forms are prefixed ("Heat Rotom", "Wash Rotom").
	if len(fields) == 2 && strings.EqualFold(fields[1], "Rotom") {
		return "Rotom"
	}
	return ""
}
