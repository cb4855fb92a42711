package language

import (
	"sort"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Off is the sentinel subtitle selection meaning no subtitle track should be default.
const Off = "off"

// Undetermined is the ISO 639-2 code muxers write for untagged tracks.
const Undetermined = "und"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"nb", "nob", "", "Norwegian Bokmål", []string{"bokmal"}},
	{"nn", "nno", "", "Norwegian Nynorsk", []string{"nynorsk"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"is", "isl", "ice", "Icelandic", []string{"icelandic"}},
	{"cs", "ces", "cze", "Czech", []string{"czech"}},
	{"sk", "slk", "slo", "Slovak", []string{"slovak"}},
	{"sl", "slv", "", "Slovenian", []string{"slovenian"}},
	{"hr", "hrv", "", "Croatian", []string{"croatian"}},
	{"sr", "srp", "", "Serbian", []string{"serbian"}},
	{"bs", "bos", "", "Bosnian", []string{"bosnian"}},
	{"mk", "mkd", "mac", "Macedonian", []string{"macedonian"}},
	{"bg", "bul", "", "Bulgarian", []string{"bulgarian"}},
	{"ro", "ron", "rum", "Romanian", []string{"romanian"}},
	{"hu", "hun", "", "Hungarian", []string{"hungarian"}},
	{"el", "ell", "gre", "Greek", []string{"greek"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian"}},
	{"be", "bel", "", "Belarusian", []string{"belarusian"}},
	{"et", "est", "", "Estonian", []string{"estonian"}},
	{"lv", "lav", "", "Latvian", []string{"latvian"}},
	{"lt", "lit", "", "Lithuanian", []string{"lithuanian"}},
	{"sq", "sqi", "alb", "Albanian", []string{"albanian"}},
	{"hy", "hye", "arm", "Armenian", []string{"armenian"}},
	{"ka", "kat", "geo", "Georgian", []string{"georgian"}},
	{"eu", "eus", "baq", "Basque", []string{"basque"}},
	{"ca", "cat", "", "Catalan", []string{"catalan"}},
	{"gl", "glg", "", "Galician", []string{"galician"}},
	{"cy", "cym", "wel", "Welsh", []string{"welsh"}},
	{"ga", "gle", "", "Irish", []string{"irish"}},
	{"he", "heb", "", "Hebrew", []string{"hebrew"}},
	{"fa", "fas", "per", "Persian", []string{"persian", "farsi"}},
	{"ur", "urd", "", "Urdu", []string{"urdu"}},
	{"bn", "ben", "", "Bengali", []string{"bengali"}},
	{"ta", "tam", "", "Tamil", []string{"tamil"}},
	{"te", "tel", "", "Telugu", []string{"telugu"}},
	{"ml", "mal", "", "Malayalam", []string{"malayalam"}},
	{"kn", "kan", "", "Kannada", []string{"kannada"}},
	{"mr", "mar", "", "Marathi", []string{"marathi"}},
	{"pa", "pan", "", "Punjabi", []string{"punjabi"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
	{"ms", "msa", "may", "Malay", []string{"malay"}},
	{"tl", "tgl", "", "Tagalog", []string{"tagalog", "filipino"}},
	{"sw", "swa", "", "Swahili", []string{"swahili"}},
	{"af", "afr", "", "Afrikaans", []string{"afrikaans"}},
	{"la", "lat", "", "Latin", []string{"latin"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// parseBase resolves codes outside the table through the x/text registry.
// Only bare 2- or 3-letter codes are considered.
func parseBase(code string) (xlanguage.Base, bool) {
	if len(code) != 2 && len(code) != 3 {
		return xlanguage.Base{}, false
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return xlanguage.Base{}, false
	}
	if base.String() == Undetermined {
		return xlanguage.Base{}, false
	}
	return base, true
}

// Known reports whether code is listed in the language table, by ISO 639-1,
// either ISO 639-2 form, or word. Codes() lists exactly these entries.
// The "und" code is not considered a selectable language.
func Known(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return false
	}
	return lookup(code) != nil
}

// IsOff reports whether value is the subtitle "off" sentinel.
func IsOff(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), Off)
}

// Canonical returns the comparison key for a language code: the primary
// ISO 639-2 code for recognized input, the lowercased input otherwise.
// Empty and undetermined codes canonicalize to "".
func Canonical(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if base, ok := parseBase(code); ok {
		return base.ISO3()
	}
	return code
}

// Equal reports whether two language codes refer to the same language.
// Untagged or undetermined codes never match anything.
func Equal(a, b string) bool {
	ca := Canonical(a)
	if ca == "" {
		return false
	}
	return ca == Canonical(b)
}

// DisplayName returns a human-readable language name. Table entries use the
// table name; other registry codes (as found on tracks) use the x/text English
// names. Returns "Unknown" for empty input and the uppercased code otherwise.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	if base, ok := parseBase(strings.ToLower(strings.TrimSpace(code))); ok {
		if name := display.English.Languages().Name(base); name != "" {
			return name
		}
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// FromTrack picks the language of a track, preferring the legacy ISO 639-2
// property and falling back to the IETF tag's primary subtag.
func FromTrack(legacy, ietf string) string {
	legacy = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(legacy, "\u0000", "")))
	if legacy != "" && legacy != Undetermined {
		return legacy
	}
	ietf = strings.TrimSpace(ietf)
	if ietf == "" {
		return legacy
	}
	primary, _, _ := strings.Cut(ietf, "-")
	primary = strings.ToLower(primary)
	if primary == "" || primary == Undetermined {
		return legacy
	}
	return primary
}

// Code is a listing entry for the language table.
type Code struct {
	ISO3    string
	Alt3    string
	ISO2    string
	Display string
}

// String renders the entry the way the languages command lists it.
func (c Code) String() string {
	if c.Alt3 != "" {
		return c.ISO3 + "/" + c.Alt3 + ": " + c.Display
	}
	return c.ISO3 + ": " + c.Display
}

// Codes returns the table entries sorted by ISO 639-2 code. Every code
// Known accepts resolves to one of them.
func Codes() []Code {
	out := make([]Code, 0, len(languages))
	for _, e := range languages {
		out = append(out, Code{ISO3: e.code3, Alt3: e.alt3, ISO2: e.code2, Display: DisplayName(e.code3)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ISO3 < out[j].ISO3 })
	return out
}
