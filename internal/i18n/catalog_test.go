package i18n

import "testing"

func load(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(DefaultLocale)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return c
}

func TestLoad_EmbeddedCatalogs(t *testing.T) {
	c := load(t)
	locales := c.Locales()
	if len(locales) != 3 {
		t.Fatalf("expected 3 locales, got %v", locales)
	}
	want := []string{"en", "es", "tr"}
	for i, l := range want {
		if locales[i] != l {
			t.Fatalf("expected locales %v, got %v", want, locales)
		}
	}
}

func TestT_LocalizedMessages(t *testing.T) {
	c := load(t)
	cases := []struct {
		locale, key, want string
	}{
		{"en", "email_in_use", "E-mail in use"},
		{"tr", "email_in_use", "Email kullanımda!"},
		{"tr", "username_null", "Kullanıcı adı boş olamaz"},
		{"es", "invalid_email", "El e-mail no es válido"},
	}
	for _, cse := range cases {
		if got := c.T(cse.locale, cse.key); got != cse.want {
			t.Fatalf("T(%s, %s) = %q, want %q", cse.locale, cse.key, got, cse.want)
		}
	}
}

func TestT_FallsBackToDefaultLocale(t *testing.T) {
	c := load(t)
	// Locale no soportado: cae al catálogo en inglés, nunca a la key cruda.
	if got := c.T("de", "password_pattern"); got != "Password must have at least 1 uppercase, 1 lowercase letter and 1 number" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestMatch_AcceptLanguage(t *testing.T) {
	c := load(t)
	cases := []struct {
		header, want string
	}{
		{"", "en"},
		{"tr", "tr"},
		{"tr-TR", "tr"},
		{"de-DE, es;q=0.8, tr;q=0.5", "es"},
		{"de;q=0.9, fr;q=0.8", "en"},
		{"es-AR,es;q=0.9,en;q=0.8", "es"},
		{"garbage;;;,,,", "en"},
	}
	for _, cse := range cases {
		if got := c.Match(cse.header); got != cse.want {
			t.Fatalf("Match(%q) = %q, want %q", cse.header, got, cse.want)
		}
	}
}
