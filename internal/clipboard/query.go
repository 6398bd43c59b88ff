package clipboard

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout bounds a single clipboard query.
const DefaultTimeout = 10 * time.Second

// QueryRunner performs the OS-level clipboard query.
type QueryRunner interface {
	// RunQuery runs the delegate once. A non-nil error means the delegate
	// could not be run to completion (start failure, timeout); a delegate
	// that ran and failed reports through ExitCode and Stderr instead.
	RunQuery(ctx context.Context, timeout time.Duration) (*QueryOutput, error)
}

// QueryOutput is what the delegate produced.
type QueryOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Line tags written by the delegate script.
const (
	tagTemp  = "TEMP"
	tagFile  = "FILE"
	tagImage = "IMAGE"
)

// clipboardState is the parsed delegate report.
type clipboardState struct {
	TempDir string
	Files   []string
	Image   []byte
}

// parseOutput decodes the tab separated line protocol of the query script.
func parseOutput(stdout []byte) (*clipboardState, error) {
	state := &clipboardState{}

	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	// A screenshot encodes to one long base64 line.
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		tag, value, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("unexpected output line %q", truncate(line, 60))
		}

		switch tag {
		case tagTemp:
			state.TempDir = strings.TrimSpace(value)
		case tagFile:
			if p := strings.TrimSpace(value); p != "" {
				state.Files = append(state.Files, p)
			}
		case tagImage:
			data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("failed to decode image payload: %w", err)
			}
			state.Image = data
		default:
			return nil, fmt.Errorf("unexpected output tag %q", tag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read delegate output: %w", err)
	}

	return state, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
