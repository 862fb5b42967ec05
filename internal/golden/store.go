package golden

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golden/internal/logging"
)

// Store wraps one RecordSet across its construct, annotate, persist
// lifecycle. A Store is not safe for concurrent WriteToDisk calls.
type Store struct {
	data RecordSet
}

// NewStore wraps an existing record set. The store takes ownership of rs.
func NewStore(rs RecordSet) *Store {
	if rs.Pages == nil {
		rs.Pages = make(map[string]PageRecord)
	}
	return &Store{data: rs}
}

// FromTestCases builds a record set with one page per test case and one
// screenshot per captured variant. A page key reported twice keeps the
// later test case.
func FromTestCases(cases []TestCase) *Store {
	logger := logging.New("golden")
	pages := make(map[string]PageRecord, len(cases))
	for _, tc := range cases {
		if tc.PageKey == DiffReportKey {
			logger.Warn("skipping test case with reserved page key", "page", tc.PageKey)
			continue
		}
		if _, dup := pages[tc.PageKey]; dup {
			logger.Debug("duplicate page key, later test case wins", "page", tc.PageKey)
		}
		page := PageRecord{
			PublicURL:   tc.PublicURL,
			Screenshots: make(map[string]string, len(tc.Screenshots)),
		}
		for _, shot := range tc.Screenshots {
			page.Screenshots[shot.Alias] = shot.URL
		}
		pages[tc.PageKey] = page
	}
	return &Store{data: RecordSet{Pages: pages}}
}

// ReadFile parses a golden file from the local filesystem.
func ReadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, "read", path, err)
		}
		return nil, newError(ErrRetrieval, "read", path, err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Store{data: rs}, nil
}

// Records returns a deep copy of the wrapped record set.
func (s *Store) Records() RecordSet {
	return s.data.Clone()
}

// DiffReportURL returns the current diff report URL and whether it is set.
func (s *Store) DiffReportURL() (string, bool) {
	if s.data.DiffReportURL == nil {
		return "", false
	}
	return *s.data.DiffReportURL, true
}

// Bytes returns the canonical serialization of the current state.
func (s *Store) Bytes() ([]byte, error) {
	return Marshal(s.data)
}

// WriteToDisk stamps diffReportURL onto the record set, overwriting any
// loaded value, and replaces the file at path with the canonical form.
// The parent directory must already exist.
func (s *Store) WriteToDisk(ctx context.Context, path, diffReportURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := diffReportURL
	s.data.DiffReportURL = &u

	data, err := Marshal(s.data)
	if err != nil {
		return newError(ErrWrite, "write", path, err)
	}
	if err := writeFileAtomic(path, data, fileMode(path)); err != nil {
		return newError(ErrWrite, "write", path, err)
	}
	logging.New("golden").Info("golden file updated", "path", path, "pages", len(s.data.Pages))
	return nil
}

// fileMode keeps the mode of an existing golden file.
func fileMode(path string) os.FileMode {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return 0o644
}

// writeFileAtomic writes data to a temp file next to path, syncs it,
// renames it into place and syncs the directory. On failure the previous
// file is left untouched.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
