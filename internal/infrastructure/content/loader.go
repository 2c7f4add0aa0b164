package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"

	domain "annia/internal/domain/content"
)

//go:embed locales/*.json
var embedded embed.FS

// Loader reads <lang>.json locale documents from a directory or, when no
// directory is configured, from the locales bundled with the binary.
type Loader struct {
	fsys fs.FS
}

func NewLoader(dir string) (*Loader, error) {
	if dir == "" {
		sub, err := fs.Sub(embedded, "locales")
		if err != nil {
			return nil, err
		}
		return &Loader{fsys: sub}, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("locale directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("locale directory: %s is not a directory", dir)
	}
	return &Loader{fsys: os.DirFS(dir)}, nil
}

// NewLoaderFS reads locale documents from fsys.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile parses the document of one language. Malformed documents are
// returned as errors; callers treat them as fatal.
func (l *Loader) LoadFile(lang domain.Lang) (domain.Value, error) {
	name := string(lang) + ".json"
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return domain.Value{}, fmt.Errorf("read %s: %w", name, err)
	}
	v, err := domain.Parse(data)
	if err != nil {
		return domain.Value{}, fmt.Errorf("parse %s: %w", name, err)
	}
	return v, nil
}

// Languages lists the languages that have a document, sorted.
func (l *Loader) Languages() ([]domain.Lang, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}
	var langs []domain.Lang
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		langs = append(langs, domain.Lang(strings.TrimSuffix(e.Name(), ".json")))
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs, nil
}

// Load builds a catalog from the base language and the given languages.
// Every language code must be a valid BCP 47 tag.
func (l *Loader) Load(base domain.Lang, languages []domain.Lang) (*domain.Catalog, error) {
	dicts := make(map[domain.Lang]domain.Value, len(languages)+1)
	for _, lang := range append([]domain.Lang{base}, languages...) {
		if _, ok := dicts[lang]; ok {
			continue
		}
		if _, err := language.Parse(string(lang)); err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}
		v, err := l.LoadFile(lang)
		if err != nil {
			return nil, err
		}
		dicts[lang] = v
	}
	return domain.NewCatalog(base, dicts)
}
