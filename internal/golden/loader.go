package golden

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"golden/internal/logging"
)

// Loader reconstructs stores from the baseline branch. Its collaborators
// are injected so tests can substitute in-memory fakes.
type Loader struct {
	source RevisionSource
	args   ArgSource
	logger *slog.Logger
}

func NewLoader(source RevisionSource, args ArgSource) *Loader {
	return &Loader{source: source, args: args, logger: logging.New("golden")}
}

// FromBaseline parses the golden file at filePath (relative to the
// repository root) as it existed at the operator's diff base.
func (l *Loader) FromBaseline(ctx context.Context, filePath string) (*Store, error) {
	if err := l.source.EnsureBaselineHistory(ctx); err != nil {
		return nil, newError(ErrRetrieval, "fetch baseline history", "", err)
	}

	rev := l.args.DiffBase()
	l.logger.Debug("reading baseline", "path", filePath, "rev", rev)

	data, err := l.source.FileAtRevision(ctx, filePath, rev)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, "read "+rev, filePath, err)
		}
		return nil, newError(ErrRetrieval, "read "+rev, filePath, err)
	}

	rs, err := Parse(data)
	if err != nil {
		return nil, err
	}
	l.logger.Info("loaded baseline", "path", filePath, "rev", rev, "pages", len(rs.Pages))
	return &Store{data: rs}, nil
}

// Diff compares the baseline golden file at baselinePath against the
// local candidate at headPath. Both are loaded concurrently.
func (l *Loader) Diff(ctx context.Context, baselinePath, headPath string) (Comparison, error) {
	var base, head *Store
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := l.FromBaseline(gCtx, baselinePath)
		base = s
		return err
	})
	g.Go(func() error {
		s, err := ReadFile(headPath)
		head = s
		return err
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}
	return Compare(base.data, head.data), nil
}
