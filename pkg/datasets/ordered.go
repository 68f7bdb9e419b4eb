package datasets

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one key/value pair of a JSON object.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that remembers key order. A key repeated later in
// the document replaces the earlier value but keeps the earlier position.
type Object []Field

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	var fields Object
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}

		if i, dup := seen[key]; dup {
			fields[i].Value = raw
			continue
		}
		seen[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = fields
	return nil
}

// Keys returns the object keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, f := range o {
		keys[i] = f.Key
	}
	return keys
}

// text converts a scalar JSON value to its string form. Strings are
// unquoted, null becomes "", and numbers or booleans keep their literal text.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// stringList accepts either a JSON array of scalars or a single scalar.
type stringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return err
		}
		out := make([]string, 0, len(raws))
		for _, r := range raws {
			if s := text(r); s != "" {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}
	if s := text(data); s != "" {
		*l = []string{s}
	} else {
		*l = nil
	}
	return nil
}

// textMap is an object of scalar values.
type textMap map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (m *textMap) UnmarshalJSON(data []byte) error {
	var raws map[string]json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(textMap, len(raws))
	for k, r := range raws {
		out[k] = text(r)
	}
	*m = out
	return nil
}
