package format

// Options controls formatting behavior
type Options struct {
	UseColors bool
	MaxWidth  int  // Max path width (0 = no limit)
	Compact   bool // Use compact single-line format
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		UseColors: true,
		MaxWidth:  80,
		Compact:   false,
	}
}

// CompactOptions returns options for compact single-line display
func CompactOptions() Options {
	opts := DefaultOptions()
	opts.Compact = true
	return opts
}
