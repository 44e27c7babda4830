// Package i18n resuelve message keys de validación a textos por locale.
//
// Los catálogos viven embebidos como YAML (un archivo por locale) y se
// cargan una sola vez al inicio: configuración read-only de proceso,
// sin mutación durante el manejo de requests.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// DefaultLocale es el locale de fallback cuando el pedido no trae uno
// soportado o el catálogo específico no tiene la key.
const DefaultLocale = "en"

// Catalog es el conjunto de traducciones cargado al startup.
type Catalog struct {
	defaultLocale string
	messages      map[string]map[string]string // locale → key → texto
}

// Load parsea los catálogos embebidos. Falla si el locale default no
// existe o si algún catálogo tiene keys que el default no cubre: el
// fallback garantiza que nunca se emite una key cruda al caller.
func Load(defaultLocale string) (*Catalog, error) {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}

	entries, err := fs.ReadDir(catalogFS, "catalogs")
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalogs: %w", err)
	}

	messages := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		locale := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		raw, err := catalogFS.ReadFile("catalogs/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read catalog %s: %w", e.Name(), err)
		}
		var m map[string]string
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: parse catalog %s: %w", e.Name(), err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("i18n: catalog %s is empty", e.Name())
		}
		messages[locale] = m
	}

	base, ok := messages[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("i18n: default locale %q has no catalog", defaultLocale)
	}
	for locale, m := range messages {
		for key := range m {
			if _, ok := base[key]; !ok {
				return nil, fmt.Errorf("i18n: key %q in %s missing from default locale %s", key, locale, defaultLocale)
			}
		}
	}

	return &Catalog{defaultLocale: defaultLocale, messages: messages}, nil
}

// T resuelve una key para el locale dado. Si el locale no tiene la
// entrada cae al locale default; como último recurso retorna la key.
func (c *Catalog) T(locale, key string) string {
	if m, ok := c.messages[locale]; ok {
		if text, ok := m[key]; ok {
			return text
		}
	}
	if text, ok := c.messages[c.defaultLocale][key]; ok {
		return text
	}
	return key
}

// Locales retorna los locales soportados, ordenados.
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.messages))
	for l := range c.messages {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Default retorna el locale de fallback configurado.
func (c *Catalog) Default() string {
	return c.defaultLocale
}
