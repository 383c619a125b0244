// Package l10n resolves backend style names into localized labels.
//
// Names are looked up in two steps. The internal table maps the engine's
// programmatic names (for example "outline1" or "Standard") to canonical
// English UI names; the display catalog then translates those canonical names
// into the requested locale. Every lookup takes its locale as an argument, so
// there is no shared "current locale" to switch and restore.
package l10n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// outlinePrefix marks canonical names that carry an outline level suffix.
const outlinePrefix = "Outline"

// internalTag keys the internal name table inside its catalog.
var internalTag = language.Und

// Translator maps style names to display strings.
type Translator struct {
	internal *catalog.Builder
	display  *catalog.Builder
	locales  map[language.Tag]struct{}
}

// New builds a translator from one or more tables; later tables override
// entries of earlier ones.
func New(tables ...Table) (*Translator, error) {
	t := &Translator{
		internal: catalog.NewBuilder(),
		display:  catalog.NewBuilder(catalog.Fallback(language.English)),
		locales:  make(map[language.Tag]struct{}),
	}
	for _, table := range tables {
		if err := t.add(table); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Translator) add(table Table) error {
	for _, key := range sortedKeys(table.Internal) {
		if err := t.internal.SetString(internalTag, key, table.Internal[key]); err != nil {
			return fmt.Errorf("internal name %q: %w", key, err)
		}
	}
	for _, raw := range sortedKeys(table.Locales) {
		tag, err := language.Parse(raw)
		if err != nil {
			return fmt.Errorf("locale %q: %w", raw, err)
		}
		strs := table.Locales[raw]
		for _, key := range sortedKeys(strs) {
			if err := t.display.SetString(tag, key, strs[key]); err != nil {
				return fmt.Errorf("locale %s string %q: %w", tag, key, err)
			}
		}
		t.locales[tag] = struct{}{}
	}
	return nil
}

// Canonical resolves a programmatic name to its canonical UI name. Unknown
// names are returned unchanged.
func (t *Translator) Canonical(name string) string {
	return lookup(t.internal, internalTag, name)
}

// Text translates a canonical UI string into tag. Missing translations fall
// back to the input.
func (t *Translator) Text(tag language.Tag, key string) string {
	return lookup(t.display, tag, key)
}

// StyleLabel returns the label shown for a style name in the given locale.
// Outline levels keep their numeric suffix untranslated, so "Outline 3"
// becomes translate("Outline") + " 3".
func (t *Translator) StyleLabel(tag language.Tag, name string) string {
	canonical := t.Canonical(name)
	if level, ok := strings.CutPrefix(canonical, outlinePrefix); ok {
		return t.Text(tag, outlinePrefix) + level
	}
	return t.Text(tag, canonical)
}

// For binds the translator to a display locale.
func (t *Translator) For(tag language.Tag) Localizer {
	return Localizer{translator: t, tag: tag}
}

// Locales lists the display locales that carry at least one string.
func (t *Translator) Locales() []language.Tag {
	tags := make([]language.Tag, 0, len(t.locales))
	for tag := range t.locales {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	return tags
}

// Localizer is a translator bound to one locale.
type Localizer struct {
	translator *Translator
	tag        language.Tag
}

// Label implements style.Labeler.
func (l Localizer) Label(name string) string {
	if l.translator == nil {
		return name
	}
	return l.translator.StyleLabel(l.tag, name)
}

// Tag returns the bound locale.
func (l Localizer) Tag() language.Tag {
	return l.tag
}

func lookup(cat catalog.Catalog, tag language.Tag, key string) string {
	// Keys are used as format strings on a miss; skip the catalog for names
	// that would be mangled by verb expansion.
	if key == "" || strings.Contains(key, "%") {
		return key
	}
	return message.NewPrinter(tag, message.Catalog(cat)).Sprintf(key)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
