package golden

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Marshal renders rs in canonical form: keys sorted at every level,
// two-space indentation, no HTML escaping, one trailing newline.
func Marshal(rs RecordSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		return nil, fmt.Errorf("golden: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes golden file content. Every error wraps ErrParse.
func Parse(data []byte) (RecordSet, error) {
	var rs RecordSet
	if err := json.Unmarshal(data, &rs); err != nil {
		var gerr *Error
		if errors.As(err, &gerr) {
			return RecordSet{}, err
		}
		return RecordSet{}, newError(ErrParse, "parse", "", err)
	}
	return rs, nil
}

// MarshalJSON flattens pages and diffReportUrl into one object. Map keys
// are sorted by encoding/json.
func (rs RecordSet) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(rs.Pages)+1)
	for key, page := range rs.Pages {
		if key == DiffReportKey {
			return nil, fmt.Errorf("page key %q is reserved", key)
		}
		if page.PublicURL == "" {
			return nil, fmt.Errorf("page %q: publicUrl is required", key)
		}
		if page.Screenshots == nil {
			page.Screenshots = map[string]string{}
		}
		obj[key] = page
	}
	if rs.DiffReportURL != nil {
		obj[DiffReportKey] = *rs.DiffReportURL
	}
	return encodeCompact(obj)
}

func (rs *RecordSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return parseErrorf("golden file must be a JSON object: %w", err)
	}
	if raw == nil {
		return parseErrorf("golden file must be a JSON object, got null")
	}

	out := RecordSet{Pages: make(map[string]PageRecord, len(raw))}
	for key, msg := range raw {
		if key == DiffReportKey {
			var u string
			if err := json.Unmarshal(msg, &u); err != nil {
				return parseErrorf("%s must be a string: %w", DiffReportKey, err)
			}
			out.DiffReportURL = &u
			continue
		}
		page, err := decodePage(msg)
		if err != nil {
			return parseErrorf("page %q: %w", key, err)
		}
		out.Pages[key] = page
	}
	*rs = out
	return nil
}

func decodePage(msg json.RawMessage) (PageRecord, error) {
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return PageRecord{}, errors.New("page record is null")
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.DisallowUnknownFields()
	var page PageRecord
	if err := dec.Decode(&page); err != nil {
		return PageRecord{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return PageRecord{}, errors.New("trailing content")
	}
	if page.PublicURL == "" {
		return PageRecord{}, errors.New("publicUrl is required")
	}
	if page.Screenshots == nil {
		page.Screenshots = map[string]string{}
	}
	return page, nil
}

func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
