package format

import (
	"fmt"
	"os"
	"strings"
)

// StatFunc reports file metadata for a path. os.Stat satisfies it.
type StatFunc func(string) (os.FileInfo, error)

// BaseName returns the last element of a Windows or slash-separated path.
func BaseName(p string) string {
	trimmed := strings.TrimRight(p, `\/`)
	if trimmed == "" {
		return p
	}
	if i := strings.LastIndexAny(trimmed, `\/`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// PasteSummary describes an inserted paste for the user. A single path is
// reported by name, with its size when stat succeeds. Several paths are
// reported by count.
func PasteSummary(paths []string, stat StatFunc) string {
	switch len(paths) {
	case 0:
		return "Nothing inserted"
	case 1:
		name := BaseName(paths[0])
		if stat != nil {
			if info, err := stat(paths[0]); err == nil {
				return fmt.Sprintf("Inserted %s (%s)", name, FormatSize(info.Size()))
			}
		}
		return "Inserted " + name
	default:
		return "Inserted " + Plural(len(paths), "file", "files")
	}
}
