// Package paste ties clipboard retrieval and path conversion together into
// the text inserted at the terminal prompt.
package paste

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/berrythewa/clippaste/internal/clipboard"
	"github.com/berrythewa/clippaste/internal/pathconv"
	"github.com/berrythewa/clippaste/internal/storage"
	"github.com/berrythewa/clippaste/internal/types"
)

// Source yields the clipboard's paths for an environment.
// *clipboard.Retriever satisfies it.
type Source interface {
	Retrieve(ctx context.Context, env types.Environment) ([]string, error)
}

// Result is the outcome of one paste.
type Result struct {
	// Paths are the clipboard entries as the OS reported them.
	Paths []string
	// Converted holds Paths rewritten for the destination terminal.
	Converted []string
	// Text is Converted joined with single spaces.
	Text  string
	Image bool
}

// Service runs pastes and records them in history.
type Service struct {
	source Source
	store  storage.HistoryStore
	logger *zap.Logger
}

// NewService creates a paste service. store may be nil to disable history.
func NewService(source Source, store storage.HistoryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		store:  store,
		logger: logger,
	}
}

// Paste retrieves the clipboard for env and converts every path for
// terminal. A failed history write is logged and does not fail the paste.
func (s *Service) Paste(ctx context.Context, env types.Environment, terminal types.Terminal) (*Result, error) {
	if !env.Supported() {
		return nil, clipboard.ErrUnsupportedPlatform
	}

	paths, err := s.source.Retrieve(ctx, env)
	if err != nil {
		s.logger.Debug("Clipboard retrieval failed", zap.Error(err))
		return nil, err
	}

	result := &Result{
		Paths:     paths,
		Converted: ConvertAll(paths, env, terminal),
		Image:     len(paths) == 1 && clipboard.IsImageSlot(paths[0]),
	}
	result.Text = strings.Join(result.Converted, " ")

	s.logger.Info("Paste ready",
		zap.Stringer("env", env),
		zap.String("terminal", terminal.Name),
		zap.Int("paths", len(paths)),
		zap.Bool("image", result.Image))

	s.record(env, terminal, result)
	return result, nil
}

func (s *Service) record(env types.Environment, terminal types.Terminal, result *Result) {
	if s.store == nil {
		return
	}
	err := s.store.SaveRecord(&types.PasteRecord{
		Environment: env.String(),
		Terminal:    terminal.Name,
		Paths:       result.Paths,
		Converted:   result.Converted,
		Image:       result.Image,
	})
	if err != nil {
		s.logger.Warn("Failed to record paste in history", zap.Error(err))
	}
}

// ConvertAll converts each path for terminal, preserving order.
func ConvertAll(paths []string, env types.Environment, terminal types.Terminal) []string {
	converted := make([]string, len(paths))
	for i, p := range paths {
		converted[i] = pathconv.Convert(p, env, terminal)
	}
	return converted
}
