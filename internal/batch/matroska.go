package batch

import (
	"path/filepath"
	"strings"
)

var matroskaExtensions = map[string]struct{}{
	".mkv":  {},
	".mka":  {},
	".mks":  {},
	".mk3d": {},
}

// IsMatroska reports whether path carries a Matroska file extension.
func IsMatroska(path string) bool {
	_, ok := matroskaExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
