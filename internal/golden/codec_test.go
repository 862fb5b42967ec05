package golden

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleSet() RecordSet {
	return RecordSet{
		Pages: map[string]PageRecord{
			"button/classes/baseline.html": {
				PublicURL: "https://cdn.example/button/classes/baseline.html",
				Screenshots: map[string]string{
					"desktop_windows_ie@11":         "https://cdn.example/button/ie.png",
					"desktop_windows_chrome@latest": "https://cdn.example/button/chrome.png",
				},
			},
			"a.html": {
				PublicURL:   "https://cdn.example/a.html",
				Screenshots: map[string]string{},
			},
		},
	}
}

func TestMarshal_CanonicalLayout(t *testing.T) {
	rs := sampleSet()
	u := "https://report/1"
	rs.DiffReportURL = &u

	got, err := Marshal(rs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{
  "a.html": {
    "publicUrl": "https://cdn.example/a.html",
    "screenshots": {}
  },
  "button/classes/baseline.html": {
    "publicUrl": "https://cdn.example/button/classes/baseline.html",
    "screenshots": {
      "desktop_windows_chrome@latest": "https://cdn.example/button/chrome.png",
      "desktop_windows_ie@11": "https://cdn.example/button/ie.png"
    }
  },
  "diffReportUrl": "https://report/1"
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	rs := sampleSet()
	first, err := Marshal(rs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Marshal(rs)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("output differs on run %d:\n%s\nvs\n%s", i, first, again)
		}
	}
	if !bytes.HasSuffix(first, []byte("}\n")) || bytes.HasSuffix(first, []byte("\n\n")) {
		t.Errorf("expected exactly one trailing newline, got %q", first[len(first)-3:])
	}
}

func TestMarshal_NilScreenshotsEmitObject(t *testing.T) {
	rs := RecordSet{Pages: map[string]PageRecord{"p.html": {PublicURL: "https://x/p"}}}
	got, err := Marshal(rs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(got), `"screenshots": {}`) {
		t.Errorf("screenshots should be {}, got:\n%s", got)
	}
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	rs := RecordSet{Pages: map[string]PageRecord{
		"p.html": {PublicURL: "https://x/p?a=1&b=<2>", Screenshots: map[string]string{}},
	}}
	got, err := Marshal(rs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(got), `"https://x/p?a=1&b=<2>"`) {
		t.Errorf("URL should be written verbatim, got:\n%s", got)
	}
}

func TestMarshal_ReservedPageKey(t *testing.T) {
	rs := RecordSet{Pages: map[string]PageRecord{
		DiffReportKey: {PublicURL: "https://x"},
	}}
	if _, err := Marshal(rs); err == nil {
		t.Fatal("expected error for reserved page key")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, withReport := range []bool{false, true} {
		rs := sampleSet()
		if withReport {
			u := ""
			rs.DiffReportURL = &u
		}
		data, err := Marshal(rs)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		got, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if diff := cmp.Diff(rs, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("round trip mismatch (report=%v) (-want +got):\n%s", withReport, diff)
		}
	}
}

func TestParse_KeyOrderIndependent(t *testing.T) {
	a := `{"x.html":{"screenshots":{"b":"2","a":"1"},"publicUrl":"https://x"},"diffReportUrl":"r"}`
	b := `{"diffReportUrl":"r","x.html":{"publicUrl":"https://x","screenshots":{"a":"1","b":"2"}}}`
	ra, err := Parse([]byte(a))
	if err != nil {
		t.Fatalf("Parse(a): %v", err)
	}
	rb, err := Parse([]byte(b))
	if err != nil {
		t.Fatalf("Parse(b): %v", err)
	}
	if diff := cmp.Diff(ra, rb); diff != "" {
		t.Errorf("semantic mismatch (-a +b):\n%s", diff)
	}
	ma, _ := Marshal(ra)
	mb, _ := Marshal(rb)
	if !bytes.Equal(ma, mb) {
		t.Errorf("canonical forms differ:\n%s\nvs\n%s", ma, mb)
	}
}

func TestParse_MissingScreenshotsIsEmpty(t *testing.T) {
	rs, err := Parse([]byte(`{"p.html":{"publicUrl":"https://x/p"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rs.Pages["p.html"].Screenshots == nil {
		t.Error("screenshots should be an empty map, not nil")
	}
	if rs.DiffReportURL != nil {
		t.Errorf("DiffReportURL = %q, want absent", *rs.DiffReportURL)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":              ``,
		"not json":           `golden`,
		"array":              `[]`,
		"null":               `null`,
		"page not object":    `{"p.html":"https://x"}`,
		"page null":          `{"p.html":null}`,
		"missing publicUrl":  `{"p.html":{"screenshots":{}}}`,
		"unknown field":      `{"p.html":{"publicUrl":"https://x","extra":1}}`,
		"screenshot non-str": `{"p.html":{"publicUrl":"https://x","screenshots":{"a":1}}}`,
		"report not string":  `{"diffReportUrl":42}`,
		"truncated":          `{"p.html":{"publicUrl":"https://x"`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v should match ErrParse", err)
			}
		})
	}
}

func TestMarshal_RequiresPublicURL(t *testing.T) {
	rs := RecordSet{Pages: map[string]PageRecord{"a.html": {}}}
	_, err := Marshal(rs)
	if err == nil || !strings.Contains(err.Error(), "publicUrl is required") {
		t.Fatalf("err = %v, want publicUrl error", err)
	}
}
