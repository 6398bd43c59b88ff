package format

import (
	"fmt"
	"strings"

	"github.com/berrythewa/clippaste/internal/types"
)

// Formatter renders paste history for the terminal.
type Formatter struct {
	options Options
}

// New creates a new formatter with the given options
func New(opts Options) *Formatter {
	return &Formatter{options: opts}
}

// FormatRecord formats a single history entry.
func (f *Formatter) FormatRecord(record *types.PasteRecord) string {
	if record == nil {
		return ColorizeIf("No record", Gray, f.options.UseColors)
	}

	kind := Plural(len(record.Paths), "file", "files")
	color := Yellow
	if record.Image {
		kind = "image"
		color = Magenta
	}
	header := fmt.Sprintf("%s %s %s",
		ColorizeIf(kind, color, f.options.UseColors),
		DimIf(record.Environment, f.options.UseColors),
		DimIf(FormatRelativeTime(record.Created), f.options.UseColors))

	if f.options.Compact {
		return header + " " + TruncateText(strings.Join(record.Converted, " "), f.width())
	}

	parts := []string{header}
	if record.Terminal != "" {
		parts = append(parts, DimIf("Terminal: "+record.Terminal, f.options.UseColors))
	}
	for _, p := range record.Converted {
		parts = append(parts, IndentText(TruncateText(p, f.width()), "  "))
	}
	return strings.Join(parts, "\n")
}

// FormatHistory formats history entries, newest first as given.
func (f *Formatter) FormatHistory(records []*types.PasteRecord) string {
	if len(records) == 0 {
		return ColorizeIf("No paste history", Gray, f.options.UseColors)
	}

	title := fmt.Sprintf("Paste History (%s)", Plural(len(records), "entry", "entries"))
	parts := []string{ColorizeIf(title, BrightBlue, f.options.UseColors), ""}

	for i, record := range records {
		index := DimIf(fmt.Sprintf("[%d]", i+1), f.options.UseColors)
		if f.options.Compact {
			parts = append(parts, index+" "+f.FormatRecord(record))
			continue
		}
		parts = append(parts, index, f.FormatRecord(record))
		if i < len(records)-1 {
			parts = append(parts, CreateSeparator(f.options))
		}
	}
	return strings.Join(parts, "\n")
}

func (f *Formatter) width() int {
	if f.options.MaxWidth <= 0 {
		return 0
	}
	return f.options.MaxWidth
}

// FormatRecord formats a single history entry with given options
func FormatRecord(record *types.PasteRecord, opts Options) string {
	return New(opts).FormatRecord(record)
}

// FormatHistory formats history entries with given options
func FormatHistory(records []*types.PasteRecord, opts Options) string {
	return New(opts).FormatHistory(records)
}
