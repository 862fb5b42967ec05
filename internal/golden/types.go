// Package golden reads and writes golden files: the versioned record of
// expected screenshot URLs per tested page and browser variant.
//
// A golden file is a single JSON object keyed by page path, plus a
// top-level "diffReportUrl". It is always written in canonical form
// (sorted keys, two-space indent, trailing newline) so that revisions of
// the file diff cleanly under version control.
package golden

import (
	"context"
	"maps"
)

// DiffReportKey is the top-level key holding the diff report URL. It is
// reserved and can never be used as a page key.
const DiffReportKey = "diffReportUrl"

// PageRecord is the expected state of one tested page.
type PageRecord struct {
	PublicURL   string            `json:"publicUrl"`
	Screenshots map[string]string `json:"screenshots"`
}

func (p PageRecord) clone() PageRecord {
	out := PageRecord{PublicURL: p.PublicURL, Screenshots: make(map[string]string, len(p.Screenshots))}
	maps.Copy(out.Screenshots, p.Screenshots)
	return out
}

// RecordSet is the in-memory form of a golden file.
type RecordSet struct {
	Pages map[string]PageRecord
	// DiffReportURL is nil when the key is absent from the file.
	DiffReportURL *string
}

// Clone returns a deep copy.
func (rs RecordSet) Clone() RecordSet {
	out := RecordSet{Pages: make(map[string]PageRecord, len(rs.Pages))}
	for k, p := range rs.Pages {
		out.Pages[k] = p.clone()
	}
	if rs.DiffReportURL != nil {
		u := *rs.DiffReportURL
		out.DiffReportURL = &u
	}
	return out
}

// Screenshot is one captured variant of a test case.
type Screenshot struct {
	Alias string `json:"alias" yaml:"alias"`
	URL   string `json:"url" yaml:"url"`
}

// TestCase is the result of capturing one page across browser variants.
type TestCase struct {
	PageKey     string       `json:"pageKey" yaml:"pageKey"`
	PublicURL   string       `json:"publicUrl" yaml:"publicUrl"`
	Screenshots []Screenshot `json:"screenshots" yaml:"screenshots"`
}

// RevisionSource retrieves file content from the history of the baseline
// branch. FileAtRevision must return an error satisfying
// errors.Is(err, fs.ErrNotExist) when the path or revision is absent.
type RevisionSource interface {
	EnsureBaselineHistory(ctx context.Context) error
	FileAtRevision(ctx context.Context, path, revision string) ([]byte, error)
}

// ArgSource exposes the diff base chosen by the operator.
type ArgSource interface {
	DiffBase() string
}
