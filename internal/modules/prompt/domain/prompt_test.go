package domain_test

import (
	"testing"

	"pitchperfect/internal/modules/prompt/domain"
)

func TestComposeSystemContextPrefersFullComposition(t *testing.T) {
	t.Parallel()
	got := domain.ComposeSystemContext("core", "persona", "vendor", "meeting")
	if got != "core\n\npersona\n\nvendor\n\nmeeting" {
		t.Fatalf("unexpected composition %q", got)
	}
	if got := domain.ComposeSystemContext("core", "persona", "", "meeting"); got != "persona" {
		t.Fatalf("partial sources must fall back to persona, got %q", got)
	}
	if got := domain.ComposeSystemContext("", "", "", ""); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}

func TestParseProfileHeaders(t *testing.T) {
	t.Parallel()
	body := "Name: Dana Whitfield\nRole: CFO at Acme Corp\n\nDana is skeptical of new vendors."
	p := domain.ParseProfile("acme", "/c/acme.txt", body)
	if p.DisplayName != "Dana Whitfield" || p.Role != "CFO at Acme Corp" {
		t.Fatalf("unexpected profile %+v", p)
	}
	bare := domain.ParseProfile("acme", "/c/acme.txt", "no headers here")
	if bare.DisplayName != "acme" || bare.Role != "" {
		t.Fatalf("unexpected bare profile %+v", bare)
	}
}
