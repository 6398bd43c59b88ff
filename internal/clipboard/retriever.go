package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/berrythewa/clippaste/internal/pathconv"
	"github.com/berrythewa/clippaste/internal/types"
)

// Options configures a Retriever.
type Options struct {
	// Timeout bounds the delegate query. Defaults to DefaultTimeout.
	Timeout time.Duration
	Logger  *zap.Logger
	// HostPath maps the delegate's Windows paths to local ones for the given
	// environment. Defaults to pathconv.HostPath.
	HostPath func(types.Environment) func(string) string
}

// Retriever turns the clipboard into a list of absolute paths.
type Retriever struct {
	runner   QueryRunner
	timeout  time.Duration
	logger   *zap.Logger
	hostPath func(types.Environment) func(string) string
}

// NewRetriever creates a Retriever backed by runner.
func NewRetriever(runner QueryRunner, opts Options) *Retriever {
	r := &Retriever{
		runner:   runner,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		hostPath: opts.HostPath,
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.hostPath == nil {
		r.hostPath = pathconv.HostPath
	}
	return r
}

// Retrieve returns the paths on the clipboard in clipboard order. A file list
// takes precedence; entries that no longer exist are dropped. Without a file
// list, a clipboard image is saved to a claude_paste_NN.png slot in the
// Windows temp directory and its path returned.
//
// Paths are returned as the OS reported them (Windows form); converting them
// for a terminal is up to the caller.
func (r *Retriever) Retrieve(ctx context.Context, env types.Environment) ([]string, error) {
	if !env.Supported() {
		return nil, ErrUnsupportedPlatform
	}

	state, err := r.query(ctx)
	if err != nil {
		return nil, err
	}

	toHost := r.hostPath(env)

	if len(state.Files) > 0 {
		return r.existingFiles(state.Files, toHost)
	}

	if len(state.Image) == 0 {
		return nil, ErrNoClipboardContent
	}
	if state.TempDir == "" {
		return nil, &DelegateError{Detail: "temp directory was not reported"}
	}

	path, err := r.persistImage(state, toHost)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (r *Retriever) query(ctx context.Context) (*clipboardState, error) {
	out, err := r.runner.RunQuery(ctx, r.timeout)
	if err != nil {
		var delegateErr *DelegateError
		if errors.As(err, &delegateErr) {
			return nil, err
		}
		return nil, &DelegateError{Err: err}
	}

	if msg := strings.TrimSpace(string(out.Stderr)); msg != "" {
		return nil, &DelegateError{Detail: msg}
	}
	if out.ExitCode != 0 {
		return nil, &DelegateError{Detail: fmt.Sprintf("delegate exited with code %d", out.ExitCode)}
	}

	state, err := parseOutput(out.Stdout)
	if err != nil {
		return nil, &DelegateError{Detail: err.Error(), Err: err}
	}

	r.logger.Debug("Clipboard state",
		zap.String("temp_dir", state.TempDir),
		zap.Int("files", len(state.Files)),
		zap.Int("image_bytes", len(state.Image)))

	return state, nil
}

func (r *Retriever) existingFiles(files []string, toHost func(string) string) ([]string, error) {
	valid := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(toHost(f)); err != nil {
			r.logger.Debug("Skipping missing clipboard file", zap.String("path", f), zap.Error(err))
			continue
		}
		valid = append(valid, f)
	}

	if len(valid) == 0 {
		return nil, ErrInvalidClipboardFiles
	}

	r.logger.Info("Retrieved files from clipboard",
		zap.Int("count", len(valid)),
		zap.Int("skipped", len(files)-len(valid)))
	return valid, nil
}

func (r *Retriever) persistImage(state *clipboardState, toHost func(string) string) (string, error) {
	hostDir := toHost(state.TempDir)
	name := nextSlot(hostDir)
	path := pathconv.JoinWindows(state.TempDir, name)

	img, err := imaging.Decode(bytes.NewReader(state.Image))
	if err != nil {
		return "", &ImagePersistError{Path: path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}
	if err := imaging.Save(img, filepath.Join(hostDir, name)); err != nil {
		return "", &ImagePersistError{Path: path, Err: err}
	}

	bounds := img.Bounds()
	r.logger.Info("Saved clipboard image",
		zap.String("path", path),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))
	return path, nil
}
