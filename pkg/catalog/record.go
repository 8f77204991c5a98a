package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Record is one raw entry of the persisted catalog format.
type Record struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Sales      string `json:"sales"`
	LastUpdate string `json:"lastUpdate"`
	Category   string `json:"category"`
	Icon       string `json:"icon,omitempty"`
}

// DecodeRecords parses a JSON array of catalog records and validates every
// entry. Any problem fails the whole batch with a *LoadError whose Source is
// left for the caller to fill in.
func DecodeRecords(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, &LoadError{Reason: ReasonMalformed, Err: errors.New("invalid JSON")}
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, &LoadError{Reason: ReasonMalformed, Err: errors.New("expected a JSON array of records")}
	}

	elems := root.Array()
	records := make([]Record, 0, len(elems))
	for i, el := range elems {
		if !el.IsObject() {
			return nil, &LoadError{Reason: ReasonMalformed, Index: i, Err: errors.New("record is not an object")}
		}
		r, err := decodeRecord(el)
		if err == nil {
			err = r.Validate()
		}
		if err != nil {
			le := err.(*LoadError)
			le.Index = i
			return nil, le
		}
		records = append(records, r)
	}
	return records, nil
}

// Validate checks the required fields of a single record.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &LoadError{Reason: ReasonSchema, Field: "name"}
	}
	if strings.TrimSpace(r.Price) == "" {
		return &LoadError{Reason: ReasonSchema, Field: "price"}
	}
	return nil
}

// decodeRecord reads the fields of one record object. name must be a JSON
// string and price a string or number; the optional fields may be any
// scalar or null. Objects and arrays are rejected everywhere.
func decodeRecord(el gjson.Result) (Record, error) {
	var r Record
	fields := []struct {
		key     string
		dst     *string
		allowed func(gjson.Type) bool
	}{
		{"name", &r.Name, func(t gjson.Type) bool { return t == gjson.String || t == gjson.Null }},
		{"price", &r.Price, func(t gjson.Type) bool { return t == gjson.String || t == gjson.Number || t == gjson.Null }},
		{"sales", &r.Sales, isScalar},
		{"lastUpdate", &r.LastUpdate, isScalar},
		{"category", &r.Category, isScalar},
		{"icon", &r.Icon, isScalar},
	}
	for _, f := range fields {
		v := el.Get(f.key)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if !f.allowed(v.Type) {
			return Record{}, &LoadError{Reason: ReasonSchema, Field: f.key, Err: fmt.Errorf("unexpected %s value", typeName(v))}
		}
		*f.dst = v.String()
	}
	return r, nil
}

func isScalar(t gjson.Type) bool {
	return t != gjson.JSON
}

func typeName(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "array"
	case v.IsObject():
		return "object"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "boolean"
	}
	return "string"
}
