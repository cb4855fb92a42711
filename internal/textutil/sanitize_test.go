package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"   ", "unknown"},
		{"/srv/Media/TV", "srv_media_tv"},
		{"Movie (2019).mkv", "movie__2019__mkv"},
		{"__--", "unknown"},
		{"Séries", "s_ries"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeToken(tt.in); got != tt.want {
				t.Fatalf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTernary(t *testing.T) {
	if got := Ternary(true, "Would change", "Changed"); got != "Would change" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Ternary(false, 1, 2); got != 2 {
		t.Fatalf("unexpected %d", got)
	}
}
