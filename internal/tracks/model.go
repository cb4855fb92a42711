package tracks

import (
	"fmt"
	"strings"
)

// Kind identifies the track types that carry default flags we manage.
type Kind string

const (
	KindAudio     Kind = "audio"
	KindSubtitles Kind = "subtitles"
)

// selectorPrefix returns the mkvpropedit type letter for the kind.
func (k Kind) selectorPrefix() string {
	if k == KindSubtitles {
		return "s"
	}
	return "a"
}

// Track is a single audio or subtitle track snapshot.
type Track struct {
	// ID is the zero-based ordinal within the track's kind.
	ID int `json:"id"`
	// Number is the container-wide track id reported by the probe.
	Number   int    `json:"number"`
	Kind     Kind   `json:"kind"`
	Language string `json:"language,omitempty"`
	Name     string `json:"name,omitempty"`
	Codec    string `json:"codec,omitempty"`
	Default  bool   `json:"default"`
	Forced   bool   `json:"forced"`
	Enabled  bool   `json:"enabled"`
}

// Label returns a short human-readable description of the track.
func (t Track) Label() string {
	parts := []string{fmt.Sprintf("%s #%d", t.Kind, t.ID)}
	if t.Language != "" {
		parts = append(parts, t.Language)
	}
	if name := strings.TrimSpace(t.Name); name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " | ")
}

// Inventory is the ordered track list of one file.
type Inventory struct {
	Path   string  `json:"path"`
	Tracks []Track `json:"tracks"`
}

// OfKind returns the tracks of kind k in probe order.
func (inv Inventory) OfKind(k Kind) []Track {
	out := make([]Track, 0, len(inv.Tracks))
	for _, t := range inv.Tracks {
		if t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// Audio returns the audio tracks in probe order.
func (inv Inventory) Audio() []Track { return inv.OfKind(KindAudio) }

// Subtitles returns the subtitle tracks in probe order.
func (inv Inventory) Subtitles() []Track { return inv.OfKind(KindSubtitles) }

// DefaultsOf returns the tracks of kind k currently flagged default.
func (inv Inventory) DefaultsOf(k Kind) []Track {
	var out []Track
	for _, t := range inv.Tracks {
		if t.Kind == k && t.Default {
			out = append(out, t)
		}
	}
	return out
}

// Method selects the resolution policy.
type Method string

const (
	MethodStrict Method = "strict"
	MethodLazy   Method = "lazy"
)

// ParseMethod parses a method name; empty input yields MethodStrict.
func ParseMethod(value string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(value))) {
	case "", MethodStrict:
		return MethodStrict, nil
	case MethodLazy:
		return MethodLazy, nil
	default:
		return "", fmt.Errorf("method must be %q or %q, got %q", MethodStrict, MethodLazy, value)
	}
}

// Selection holds the requested languages. Empty fields are not requested.
type Selection struct {
	Audio    string `json:"audio,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Target is the track chosen for one side of a resolution.
type Target struct {
	Kind    Kind `json:"kind"`
	TrackID int  `json:"track_id"`
	// Off means every track of Kind should be left without a default flag.
	Off bool `json:"off,omitempty"`
}

// Transition is a single default-flag change.
type Transition struct {
	Kind    Kind `json:"kind"`
	TrackID int  `json:"track_id"`
	Default bool `json:"default"`
}

// Selector returns the mkvpropedit track selector (1-based within the kind).
func (tr Transition) Selector() string {
	return fmt.Sprintf("track:%s%d", tr.Kind.selectorPrefix(), tr.TrackID+1)
}

// FlagValue returns the mkvpropedit flag-default value.
func (tr Transition) FlagValue() string {
	if tr.Default {
		return "flag-default=1"
	}
	return "flag-default=0"
}

func (tr Transition) String() string {
	verb := "unset"
	if tr.Default {
		verb = "set"
	}
	return fmt.Sprintf("%s %s %d", verb, tr.Kind, tr.TrackID)
}

// Resolution is the outcome of resolving one inventory.
type Resolution struct {
	Proceed     bool         `json:"proceed"`
	Audio       *Target      `json:"audio,omitempty"`
	Subtitle    *Target      `json:"subtitle,omitempty"`
	Missing     []Kind       `json:"missing,omitempty"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// Changed reports whether applying the resolution mutates any flag.
func (r Resolution) Changed() bool {
	return r.Proceed && len(r.Transitions) > 0
}
