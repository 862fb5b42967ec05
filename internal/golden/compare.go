package golden

import (
	"slices"
	"sort"
)

// ChangeKind classifies one difference between two record sets.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
	Changed ChangeKind = "changed"
)

// Change is a page-level (Alias == "") or screenshot-level difference.
// For page-level changes BaseURL and HeadURL hold publicUrl values.
type Change struct {
	PageKey string     `json:"pageKey"`
	Alias   string     `json:"alias,omitempty"`
	Kind    ChangeKind `json:"kind"`
	BaseURL string     `json:"baseUrl,omitempty"`
	HeadURL string     `json:"headUrl,omitempty"`
}

// Comparison is the reconciliation of a candidate against a baseline.
type Comparison struct {
	Changes   []Change `json:"changes"`
	Unchanged int      `json:"unchanged"`
}

// Empty reports whether the candidate matches the baseline.
func (c Comparison) Empty() bool { return len(c.Changes) == 0 }

// Count returns the number of changes of the given kind.
func (c Comparison) Count(kind ChangeKind) int {
	n := 0
	for _, ch := range c.Changes {
		if ch.Kind == kind {
			n++
		}
	}
	return n
}

// Compare reconciles head against base. diffReportUrl is ignored. Changes
// are ordered by page key, then alias, page-level entries first.
func Compare(base, head RecordSet) Comparison {
	out := Comparison{Changes: []Change{}}

	keys := make(map[string]struct{}, len(base.Pages)+len(head.Pages))
	for k := range base.Pages {
		keys[k] = struct{}{}
	}
	for k := range head.Pages {
		keys[k] = struct{}{}
	}
	pageKeys := make([]string, 0, len(keys))
	for k := range keys {
		pageKeys = append(pageKeys, k)
	}
	sort.Strings(pageKeys)

	for _, key := range pageKeys {
		bp, inBase := base.Pages[key]
		hp, inHead := head.Pages[key]
		switch {
		case !inBase:
			out.Changes = append(out.Changes, Change{PageKey: key, Kind: Added, HeadURL: hp.PublicURL})
		case !inHead:
			out.Changes = append(out.Changes, Change{PageKey: key, Kind: Removed, BaseURL: bp.PublicURL})
		case bp.PublicURL != hp.PublicURL:
			out.Changes = append(out.Changes, Change{PageKey: key, Kind: Changed, BaseURL: bp.PublicURL, HeadURL: hp.PublicURL})
		}
		out.compareScreenshots(key, bp.Screenshots, hp.Screenshots)
	}
	return out
}

func (c *Comparison) compareScreenshots(page string, base, head map[string]string) {
	aliases := make([]string, 0, len(base)+len(head))
	for a := range base {
		aliases = append(aliases, a)
	}
	for a := range head {
		if _, ok := base[a]; !ok {
			aliases = append(aliases, a)
		}
	}
	slices.Sort(aliases)

	for _, alias := range aliases {
		bu, inBase := base[alias]
		hu, inHead := head[alias]
		switch {
		case !inBase:
			c.Changes = append(c.Changes, Change{PageKey: page, Alias: alias, Kind: Added, HeadURL: hu})
		case !inHead:
			c.Changes = append(c.Changes, Change{PageKey: page, Alias: alias, Kind: Removed, BaseURL: bu})
		case bu != hu:
			c.Changes = append(c.Changes, Change{PageKey: page, Alias: alias, Kind: Changed, BaseURL: bu, HeadURL: hu})
		default:
			c.Unchanged++
		}
	}
}
