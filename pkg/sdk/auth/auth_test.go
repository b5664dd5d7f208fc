package auth

import (
	"net/http"
	"testing"
)

func TestAPIKeyProviderAuthenticate(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://backend.omnidim.io/api/v1/agents", nil)

	p := NewAPIKeyProvider("  sk_live_abcdef123456 ")
	if err := p.Authenticate(req); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if got := req.Header.Get("Authorization"); got != "Bearer sk_live_abcdef123456" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer sk_live_abcdef123456")
	}
}

func TestAPIKeyProviderKeepsExistingHeader(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://backend.omnidim.io/api/v1/agents", nil)
	req.Header.Set("Authorization", "Bearer override")

	_ = NewAPIKeyProvider("sk_live_abcdef123456").Authenticate(req)

	if got := req.Header.Get("Authorization"); got != "Bearer override" {
		t.Errorf("Authorization = %q, want existing header preserved", got)
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "(not set)"},
		{"short", "*****"},
		{"sk_live_abcdef123456", "***3456"},
	}
	for _, tt := range tests {
		if got := Mask(tt.key); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
