package weather

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldValue is one rendered field of a projected record.
// Value is nil when the record has no value for the field.
type FieldValue struct {
	Name  string
	Value *string
}

// Projection is a record reduced to a subset of its fields, in declaration order.
type Projection []FieldValue

// Keys returns the field names of the projection in order.
func (p Projection) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, fv := range p {
		keys = append(keys, fv.Name)
	}
	return keys
}

// Get returns the rendered value of the named field. The second result reports
// whether the field is part of the projection at all.
func (p Projection) Get(name string) (*string, bool) {
	for _, fv := range p {
		if fv.Name == name {
			return fv.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the projection as an object whose keys keep field order.
func (p Projection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fv.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(fv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// parseFieldSpec turns "Name, air_temp" into a lowercase token set.
// An empty set means every field is selected.
func parseFieldSpec(fieldSpec string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Split(fieldSpec, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// SelectFields returns the declared fields matching fieldSpec, case-insensitively,
// in declaration order. Unknown names are ignored.
func SelectFields(fieldSpec string) []Field {
	tokens := parseFieldSpec(fieldSpec)
	if len(tokens) == 0 {
		return Fields()
	}

	selected := make([]Field, 0, len(tokens))
	for _, f := range recordFields {
		if _, ok := tokens[f.Name]; ok {
			selected = append(selected, f)
		}
	}
	return selected
}

// Project renders each record restricted to the fields named in fieldSpec.
// The result is empty when records is empty or no requested field exists.
func Project(records []Record, fieldSpec string) []Projection {
	fields := SelectFields(fieldSpec)
	if len(records) == 0 || len(fields) == 0 {
		return []Projection{}
	}

	out := make([]Projection, 0, len(records))
	for i := range records {
		p := make(Projection, 0, len(fields))
		for _, f := range fields {
			p = append(p, FieldValue{Name: f.Name, Value: f.Value(&records[i])})
		}
		out = append(out, p)
	}
	return out
}
