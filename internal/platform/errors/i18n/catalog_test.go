package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if got := GetCatalog(""); got != base {
		t.Fatal("expected empty locale to use en-US catalog")
	}
	if got := GetCatalog("missing-locale"); got != base {
		t.Fatal("expected fallback to en-US catalog")
	}
}

func TestGetCatalogMatchesLanguage(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "fr-FR", want: "fr-FR"},
		{locale: "fr-CA", want: "fr-FR"},
		{locale: "fr", want: "fr-FR"},
		{locale: "en-GB", want: "en-US"},
		{locale: "ja-JP", want: "en-US"},
	}
	for _, tt := range tests {
		if got := GetCatalog(tt.locale).Locale(); got != tt.want {
			t.Fatalf("GetCatalog(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestCatalogsCoverEveryCode(t *testing.T) {
	codes := []string{
		CodeUnknown, CodeInvalidArgument, CodeCountOutOfRange, CodeInvalidKind,
		CodeNotFound, CodeStorageUnavailable, CodeCatalogInvalid,
	}
	for _, locale := range []string{"en-US", "fr-FR"} {
		cat := GetCatalog(locale)
		for _, code := range codes {
			if _, ok := cat.messages[code]; !ok {
				t.Fatalf("%s catalog misses %s", locale, code)
			}
		}
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}
