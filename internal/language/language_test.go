package language

import (
	"strings"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"eng", "eng", true},
		{"eng", "ENG", true},
		{"eng", "en", true},
		{"english", "eng", true},
		{"fre", "fra", true},
		{"ger", "deu", true},
		{"chi", "zh", true},
		{"eng", "spa", false},
		{"und", "und", false},
		{"", "", false},
		{"", "eng", false},
		{"xyz", "xyz", true},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	for _, code := range []string{"eng", "EN", "fre", "spanish", "filipino"} {
		if !Known(code) {
			t.Errorf("Known(%q) = false, want true", code)
		}
	}
	// Registry codes absent from the listing are rejected.
	for _, code := range []string{"", "und", "x1z", "klingonese", "jav", "tib", "yid", "mon", "yor"} {
		if Known(code) {
			t.Errorf("Known(%q) = true, want false", code)
		}
	}
}

func TestKnownMatchesListing(t *testing.T) {
	listed := make(map[string]bool)
	for _, c := range Codes() {
		for _, code := range []string{c.ISO3, c.Alt3, c.ISO2} {
			if code != "" {
				listed[code] = true
			}
		}
	}
	for code := range listed {
		if !Known(code) {
			t.Errorf("listed code %q is not accepted", code)
		}
	}
	for _, e := range languages {
		for _, word := range e.words {
			if !Known(word) {
				t.Errorf("word form %q is not accepted", word)
			}
			if !listed[Canonical(word)] {
				t.Errorf("word form %q resolves to unlisted %q", word, Canonical(word))
			}
		}
	}
	for _, code := range []string{"jav", "tib", "yid", "mon"} {
		if listed[code] != Known(code) {
			t.Errorf("%q: listed=%v known=%v", code, listed[code], Known(code))
		}
	}
}

func TestIsOff(t *testing.T) {
	if !IsOff("off") || !IsOff(" OFF ") {
		t.Fatal("expected off sentinel to be recognized")
	}
	if IsOff("eng") || IsOff("") {
		t.Fatal("unexpected off match")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"fre", "French"},
		{"fra", "French"},
		{"ger", "German"},
		{"", "Unknown"},
		{"x1z", "X1Z"},
		{"english", "English"},
		{"yor", "Yoruba"},
		{"jav", "Javanese"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := DisplayName(tt.input)
			if result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFromTrack(t *testing.T) {
	tests := []struct {
		name         string
		legacy, ietf string
		expected     string
	}{
		{"legacy wins", "eng", "en-US", "eng"},
		{"null bytes stripped", "jpn\x00", "", "jpn"},
		{"und falls back to ietf", "und", "fr-CA", "fr"},
		{"empty falls back to ietf", "", "de", "de"},
		{"nothing usable", "und", "", "und"},
		{"both empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTrack(tt.legacy, tt.ietf); got != tt.expected {
				t.Errorf("FromTrack(%q, %q) = %q, want %q", tt.legacy, tt.ietf, got, tt.expected)
			}
		})
	}
}

func TestCodesSortedAndRendered(t *testing.T) {
	codes := Codes()
	if len(codes) != len(languages) {
		t.Fatalf("expected %d codes, got %d", len(languages), len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1].ISO3 > codes[i].ISO3 {
			t.Fatalf("codes not sorted at %d: %s > %s", i, codes[i-1].ISO3, codes[i].ISO3)
		}
	}
	for _, code := range codes {
		if code.ISO3 == "fra" {
			if got := code.String(); !strings.HasPrefix(got, "fra/fre: ") {
				t.Fatalf("unexpected rendering %q", got)
			}
			return
		}
	}
	t.Fatal("expected fra in code listing")
}
