package clipboard

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform is returned when retrieval is attempted outside
	// native Windows or the Linux subsystem.
	ErrUnsupportedPlatform = errors.New("only supported on Windows and WSL environments")

	// ErrNoClipboardContent means the clipboard held neither a file list nor an image.
	ErrNoClipboardContent = errors.New("no files or images found in clipboard: copy a file or an image and try again")

	// ErrInvalidClipboardFiles means the clipboard listed files but none of them exist.
	ErrInvalidClipboardFiles = errors.New("no valid files found in clipboard")
)

// DelegateError reports a failure of the OS-level clipboard query itself:
// the shell could not start, wrote to stderr, exited non-zero, timed out or
// produced output that could not be parsed.
type DelegateError struct {
	Detail string
	Err    error
}

func (e *DelegateError) Error() string {
	if e.Detail == "" && e.Err != nil {
		return fmt.Sprintf("clipboard query failed: %v", e.Err)
	}
	return fmt.Sprintf("clipboard query failed: %s", e.Detail)
}

func (e *DelegateError) Unwrap() error { return e.Err }

// ImagePersistError reports that an image was found but could not be written
// to its temp slot.
type ImagePersistError struct {
	Path string
	Err  error
}

func (e *ImagePersistError) Error() string {
	return fmt.Sprintf("failed to save clipboard image to %s: %v", e.Path, e.Err)
}

func (e *ImagePersistError) Unwrap() error { return e.Err }
