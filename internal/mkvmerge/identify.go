package mkvmerge

import (
	"encoding/json"
	"fmt"
	"strings"

	"mkvdefaulter/internal/language"
	"mkvdefaulter/internal/tracks"
)

// Identification is the subset of mkvmerge's identification output we use.
type Identification struct {
	FileName  string     `json:"file_name"`
	Container Container  `json:"container"`
	Tracks    []RawTrack `json:"tracks"`
	Errors    []string   `json:"errors"`
	Warnings  []string   `json:"warnings"`
}

// Container describes the detected container.
type Container struct {
	Recognized bool   `json:"recognized"`
	Supported  bool   `json:"supported"`
	Type       string `json:"type"`
}

// RawTrack is a single entry of the identification "tracks" array.
type RawTrack struct {
	ID         int             `json:"id"`
	Type       string          `json:"type"`
	Codec      string          `json:"codec"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties holds the per-track properties we care about.
type TrackProperties struct {
	Number       int    `json:"number"`
	Language     string `json:"language"`
	LanguageIETF string `json:"language_ietf"`
	TrackName    string `json:"track_name"`
	DefaultTrack bool   `json:"default_track"`
	ForcedTrack  bool   `json:"forced_track"`
	// EnabledTrack defaults to true when mkvmerge omits it.
	EnabledTrack *bool `json:"enabled_track"`
}

// ParseIdentification decodes mkvmerge -J output.
func ParseIdentification(data []byte) (Identification, error) {
	var ident Identification
	if err := json.Unmarshal(data, &ident); err != nil {
		return Identification{}, fmt.Errorf("decode identification: %w", err)
	}
	return ident, nil
}

// ErrorMessage joins the errors reported by mkvmerge.
func (id Identification) ErrorMessage() string {
	msgs := make([]string, 0, len(id.Errors))
	for _, msg := range id.Errors {
		if msg = strings.TrimSpace(msg); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}

// Inventory converts the identification into a track inventory for path.
// Video, button and other track types are ignored.
func (id Identification) Inventory(path string) tracks.Inventory {
	inv := tracks.Inventory{Path: path}
	ordinals := map[tracks.Kind]int{}
	for _, raw := range id.Tracks {
		kind, ok := kindOf(raw.Type)
		if !ok {
			continue
		}
		enabled := true
		if raw.Properties.EnabledTrack != nil {
			enabled = *raw.Properties.EnabledTrack
		}
		inv.Tracks = append(inv.Tracks, tracks.Track{
			ID:       ordinals[kind],
			Number:   raw.ID,
			Kind:     kind,
			Language: language.FromTrack(raw.Properties.Language, raw.Properties.LanguageIETF),
			Name:     strings.TrimSpace(raw.Properties.TrackName),
			Codec:    raw.Codec,
			Default:  raw.Properties.DefaultTrack,
			Forced:   raw.Properties.ForcedTrack,
			Enabled:  enabled,
		})
		ordinals[kind]++
	}
	return inv
}

func kindOf(trackType string) (tracks.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(trackType)) {
	case "audio":
		return tracks.KindAudio, true
	case "subtitles", "subtitle":
		return tracks.KindSubtitles, true
	default:
		return "", false
	}
}
