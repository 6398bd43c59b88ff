package clipboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Image slots are shared by every invocation writing to the same temp
// directory. Names must stay stable across versions.
const (
	slotPrefix = "claude_paste_"
	slotExt    = ".png"
	maxSlots   = 99
)

var slotPattern = regexp.MustCompile(`claude_paste_\d{2}`)

func slotName(n int) string {
	return fmt.Sprintf("%s%02d%s", slotPrefix, n, slotExt)
}

// nextSlot picks the file name an image is written to inside dir: the first
// free slot, else the oldest existing slot, else slot 01.
// Two concurrent callers may pick the same slot.
func nextSlot(dir string) string {
	for i := 1; i <= maxSlots; i++ {
		name := slotName(i)
		if _, err := os.Stat(filepath.Join(dir, name)); errors.Is(err, fs.ErrNotExist) {
			return name
		}
	}

	if oldest := oldestSlot(dir); oldest != "" {
		return oldest
	}
	return slotName(1)
}

// oldestSlot returns the name of the least recently written slot file in dir.
func oldestSlot(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, slotPrefix+"*"+slotExt))
	if err != nil {
		return ""
	}

	var (
		oldest     string
		oldestTime time.Time
	)
	for _, match := range matches {
		name := filepath.Base(match)
		if !slotPattern.MatchString(name) {
			continue
		}
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if oldest == "" || info.ModTime().Before(oldestTime) {
			oldest = name
			oldestTime = info.ModTime()
		}
	}
	return oldest
}

// IsImageSlot reports whether p names one of the image slot files.
func IsImageSlot(p string) bool {
	i := strings.LastIndexAny(p, `\/`)
	name := p[i+1:]
	return strings.HasSuffix(name, slotExt) && slotPattern.MatchString(name)
}
