package tracks

import (
	"errors"
	"fmt"
	"strings"

	"mkvdefaulter/internal/language"
)

var (
	// ErrInvalidSelection indicates no usable language was requested.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrEmptyInventory indicates the file has no tracks of any requested kind.
	ErrEmptyInventory = errors.New("empty inventory")
)

// side captures the lookup result for one requested track kind.
type side struct {
	kind      Kind
	requested bool
	target    *Target
}

func (s side) found() bool { return s.requested && s.target != nil }

// policy decides whether a resolution proceeds given both sides.
type policy func(audio, subtitle side) bool

var policies = map[Method]policy{
	MethodStrict: strictPolicy,
	MethodLazy:   lazyPolicy,
}

// strictPolicy proceeds only when every requested side was found.
func strictPolicy(audio, subtitle side) bool {
	for _, s := range []side{audio, subtitle} {
		if s.requested && s.target == nil {
			return false
		}
	}
	return audio.requested || subtitle.requested
}

// lazyPolicy proceeds when at least one requested side was found.
func lazyPolicy(audio, subtitle side) bool {
	return audio.found() || subtitle.found()
}

// Resolve decides whether the inventory should be edited and computes the
// complete set of default-flag transitions. The first matching track in probe
// order wins. A policy miss is not an error: it yields Proceed=false.
func Resolve(inv Inventory, sel Selection, method Method) (Resolution, error) {
	sel.Audio = strings.TrimSpace(sel.Audio)
	sel.Subtitle = strings.TrimSpace(sel.Subtitle)
	if sel.Audio == "" && sel.Subtitle == "" {
		return Resolution{}, fmt.Errorf("%w: no audio or subtitle language requested", ErrInvalidSelection)
	}
	if language.IsOff(sel.Audio) {
		return Resolution{}, fmt.Errorf("%w: audio cannot be %q", ErrInvalidSelection, language.Off)
	}
	decide, ok := policies[method]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: unknown method %q", ErrInvalidSelection, method)
	}
	if !satisfiable(inv, sel) {
		return Resolution{}, fmt.Errorf("%w: no tracks of the requested kinds", ErrEmptyInventory)
	}

	audio := side{kind: KindAudio, requested: sel.Audio != ""}
	if audio.requested {
		audio.target = firstMatch(inv, KindAudio, sel.Audio)
	}
	subtitle := side{kind: KindSubtitles, requested: sel.Subtitle != ""}
	if subtitle.requested {
		if language.IsOff(sel.Subtitle) {
			subtitle.target = &Target{Kind: KindSubtitles, TrackID: -1, Off: true}
		} else {
			subtitle.target = firstMatch(inv, KindSubtitles, sel.Subtitle)
		}
	}

	res := Resolution{}
	for _, s := range []side{audio, subtitle} {
		if s.requested && s.target == nil {
			res.Missing = append(res.Missing, s.kind)
		}
	}
	if !decide(audio, subtitle) {
		return res, nil
	}

	res.Proceed = true
	if audio.found() {
		res.Audio = audio.target
		res.Transitions = append(res.Transitions, transitionsFor(inv, *audio.target)...)
	}
	if subtitle.found() {
		res.Subtitle = subtitle.target
		res.Transitions = append(res.Transitions, transitionsFor(inv, *subtitle.target)...)
	}
	return res, nil
}

// satisfiable reports whether any requested side could possibly be found.
// The subtitle "off" sentinel is always satisfiable.
func satisfiable(inv Inventory, sel Selection) bool {
	if language.IsOff(sel.Subtitle) {
		return true
	}
	if sel.Audio != "" && len(inv.Audio()) > 0 {
		return true
	}
	return sel.Subtitle != "" && len(inv.Subtitles()) > 0
}

func firstMatch(inv Inventory, kind Kind, want string) *Target {
	for _, t := range inv.Tracks {
		if t.Kind == kind && language.Equal(t.Language, want) {
			return &Target{Kind: kind, TrackID: t.ID}
		}
	}
	return nil
}

// transitionsFor unsets every other default of the target's kind in probe
// order, then sets the target if it is not already default.
func transitionsFor(inv Inventory, target Target) []Transition {
	var out []Transition
	var chosen *Track
	for i := range inv.Tracks {
		t := inv.Tracks[i]
		if t.Kind != target.Kind {
			continue
		}
		if !target.Off && t.ID == target.TrackID {
			chosen = &inv.Tracks[i]
			continue
		}
		if t.Default {
			out = append(out, Transition{Kind: t.Kind, TrackID: t.ID, Default: false})
		}
	}
	if chosen != nil && !chosen.Default {
		out = append(out, Transition{Kind: target.Kind, TrackID: target.TrackID, Default: true})
	}
	return out
}
