package i18n

import (
	"sort"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength corta headers desmedidos antes de parsear.
const maxAcceptLanguageLength = 4096

type langWithQ struct {
	lang string
	q    float64
}

// parseAcceptLanguageHeader parsea Accept-Language según RFC 7231,
// tolerando entradas malformadas y ordenando por quality descendente.
func parseAcceptLanguageHeader(header string) []langWithQ {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []langWithQ
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		langAndQ := strings.Split(part, ";")
		lang := strings.ToLower(strings.TrimSpace(langAndQ[0]))
		q := 1.0

		if len(langAndQ) > 1 {
			qPart := strings.TrimSpace(langAndQ[1])
			if strings.HasPrefix(qPart, "q=") {
				if qVal, err := strconv.ParseFloat(qPart[2:], 64); err == nil && qVal >= 0 && qVal <= 1 {
					q = qVal
				}
			}
		}

		if lang != "" {
			languages = append(languages, langWithQ{lang: lang, q: q})
		}
	}

	sort.SliceStable(languages, func(i, j int) bool {
		return languages[i].q > languages[j].q
	})
	return languages
}

// Match negocia el locale del request contra los soportados del
// catálogo. Primero matches exactos ("tr-TR" contra "tr-tr"), después
// el idioma base ("tr-TR" → "tr"); si nada matchea, el default.
func (c *Catalog) Match(header string) string {
	languages := parseAcceptLanguageHeader(header)
	if len(languages) == 0 {
		return c.defaultLocale
	}

	for _, lq := range languages {
		if _, ok := c.messages[lq.lang]; ok {
			return lq.lang
		}
	}

	for _, lq := range languages {
		if idx := strings.Index(lq.lang, "-"); idx > 0 {
			if _, ok := c.messages[lq.lang[:idx]]; ok {
				return lq.lang[:idx]
			}
		}
	}

	return c.defaultLocale
}
