package sqlite

import (
	"encoding/json"
	"fmt"
	"time"
)

// document is a stored entity split into its top-level JSON members.
type document map[string]json.RawMessage

// encode serializes item for storage. The identity is dropped because the
// row id is authoritative and projected back on read.
func encode(item any) (string, document, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return "", nil, fmt.Errorf("encode document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("encode document: %w", err)
	}
	delete(doc, "id")
	out, err := json.Marshal(doc)
	if err != nil {
		return "", nil, fmt.Errorf("encode document: %w", err)
	}
	return string(out), doc, nil
}

func decodeDocument(raw string) (document, error) {
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// extractKey returns the column value of idx for doc. A missing or null
// field yields NULL, which no lookup matches.
func extractKey(idx Index, doc document) (any, error) {
	raw, ok := doc[idx.Field]
	if !ok || string(raw) == "null" {
		return nil, nil
	}

	switch idx.Kind {
	case KindTime:
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("index %s: field %s is not a timestamp: %w", idx.Name, idx.Field, err)
		}
		if t.IsZero() {
			return nil, nil
		}
		return t.UnixNano(), nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("index %s: field %s is not a string: %w", idx.Name, idx.Field, err)
		}
		return s, nil
	}
}

func extractKeys(indexes []Index, doc document) ([]any, error) {
	keys := make([]any, 0, len(indexes))
	for _, idx := range indexes {
		k, err := extractKey(idx, doc)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// keyArg converts a caller-supplied lookup key into the column's representation.
func keyArg(idx Index, v any) (any, error) {
	switch idx.Kind {
	case KindTime:
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("index %s expects a time.Time key, got %T", idx.Name, v)
		}
		return t.UnixNano(), nil
	default:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("index %s expects a string key, got %T", idx.Name, v)
		}
		return s, nil
	}
}
