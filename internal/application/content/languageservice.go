// Package content serves resolved translation dictionaries and remembers
// which language each visitor chose.
package content

import (
	"context"
	"strings"

	"golang.org/x/text/language"

	domain "annia/internal/domain/content"
	"annia/internal/shared/errors"
	"annia/internal/shared/logger"
)

// PreferenceStore persists small string preferences. It is the only place
// the chosen language is written to.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LocaleContext is what renderers receive instead of reading global state:
// the active language and its resolved dictionary.
type LocaleContext struct {
	Language domain.Lang  `json:"language"`
	Messages domain.Value `json:"messages"`
}

// T returns the copy at a dotted path.
func (lc *LocaleContext) T(path string) string {
	return lc.Messages.Text(path)
}

const MsgUnsupportedLanguage = "Idioma no soportado."

type LanguageService struct {
	catalog   *domain.Catalog
	store     PreferenceStore
	languages []domain.Lang
	matcher   language.Matcher
	logger    logger.Interface
}

func NewLanguageService(catalog *domain.Catalog, store PreferenceStore, logger logger.Interface) *LanguageService {
	languages := catalog.Languages()
	tags := make([]language.Tag, 0, len(languages))
	for _, lang := range languages {
		tags = append(tags, language.Make(string(lang)))
	}

	return &LanguageService{
		catalog:   catalog,
		store:     store,
		languages: languages,
		matcher:   language.NewMatcher(tags),
		logger:    logger,
	}
}

func preferenceKey(clientID string) string {
	return "language:" + clientID
}

// Match maps a requested tag such as "en-GB" to a supported language.
func (s *LanguageService) Match(requested string) (domain.Lang, bool) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return "", false
	}
	if s.catalog.Supports(domain.Lang(requested)) {
		return domain.Lang(requested), true
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return "", false
	}
	_, index, confidence := s.matcher.Match(tag)
	if confidence == language.No {
		return "", false
	}
	return s.languages[index], true
}

// Resolve builds the locale context of a language without touching the
// visitor's preference.
func (s *LanguageService) Resolve(requested string) (*LocaleContext, error) {
	lang, ok := s.Match(requested)
	if !ok {
		return nil, errors.NewNotFoundError(MsgUnsupportedLanguage, requested)
	}
	return s.contextFor(lang), nil
}

// Current returns the visitor's stored language, or the base language when
// nothing usable is stored.
func (s *LanguageService) Current(ctx context.Context, clientID string) *LocaleContext {
	lang := s.catalog.Base()
	if clientID == "" {
		return s.contextFor(lang)
	}

	stored, ok, err := s.store.Get(ctx, preferenceKey(clientID))
	switch {
	case err != nil:
		s.logger.Warnw("failed to read language preference", "client_id", clientID, "error", err)
	case ok && s.catalog.Supports(domain.Lang(stored)):
		lang = domain.Lang(stored)
	case ok:
		s.logger.Debugw("ignoring unsupported stored language", "client_id", clientID, "language", stored)
	}

	return s.contextFor(lang)
}

// Switch changes the visitor's language and persists the choice. The
// dictionary is recomputed on every switch.
func (s *LanguageService) Switch(ctx context.Context, clientID, requested string) (*LocaleContext, error) {
	lang, ok := s.Match(requested)
	if !ok {
		return nil, errors.NewValidationError(MsgUnsupportedLanguage, requested)
	}

	if clientID != "" {
		if err := s.store.Set(ctx, preferenceKey(clientID), string(lang)); err != nil {
			// The switch still applies to this response.
			s.logger.Warnw("failed to persist language preference", "client_id", clientID, "error", err)
		}
	}

	s.logger.Debugw("language switched", "client_id", clientID, "language", lang)

	return s.contextFor(lang), nil
}

func (s *LanguageService) contextFor(lang domain.Lang) *LocaleContext {
	return &LocaleContext{Language: lang, Messages: s.catalog.Resolve(lang)}
}
