package content

import (
	"fmt"
	"sort"
)

// Lang is a supported locale code such as "es" or "en".
type Lang string

// Catalog holds the canonical dictionary and the per-locale overrides loaded
// at process start. It is read-only after construction.
type Catalog struct {
	base      Lang
	dicts     map[Lang]Value
	languages []Lang
}

// NewCatalog builds a catalog. dicts must contain the base language.
func NewCatalog(base Lang, dicts map[Lang]Value) (*Catalog, error) {
	if _, ok := dicts[base]; !ok {
		return nil, fmt.Errorf("catalog: base language %q has no dictionary", base)
	}

	languages := make([]Lang, 0, len(dicts))
	for lang := range dicts {
		if lang != base {
			languages = append(languages, lang)
		}
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i] < languages[j] })
	languages = append([]Lang{base}, languages...)

	return &Catalog{base: base, dicts: dicts, languages: languages}, nil
}

// Base returns the canonical language.
func (c *Catalog) Base() Lang { return c.base }

// Languages returns the base language first, then the others sorted.
func (c *Catalog) Languages() []Lang {
	return append([]Lang(nil), c.languages...)
}

func (c *Catalog) Supports(lang Lang) bool {
	_, ok := c.dicts[lang]
	return ok
}

// Dictionary returns the raw document of lang.
func (c *Catalog) Dictionary(lang Lang) (Value, bool) {
	v, ok := c.dicts[lang]
	return v, ok
}

// Resolve merges the dictionary of lang onto the base one. Unknown languages
// resolve to the base dictionary.
func (c *Catalog) Resolve(lang Lang) Value {
	return Resolve(c.dicts[c.base], c.dicts[lang])
}

// Missing reports, per non-base language, the base paths it lacks.
func (c *Catalog) Missing() map[Lang][]string {
	report := make(map[Lang][]string)
	base := c.dicts[c.base]
	for _, lang := range c.languages[1:] {
		if missing := MissingPaths(base, c.dicts[lang]); len(missing) > 0 {
			report[lang] = missing
		}
	}
	return report
}
