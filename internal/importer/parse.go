// Package importer loads phones in bulk from a JSON array.
//
// Importing happens in two phases. Parse checks the shape of the whole batch
// and rejects it before anything is written. Run then inserts the rows one at
// a time and collects a message for every row that could not be stored.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/quochao170402/cekspek/internal/format"
)

// ParseError rejects the whole batch.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Row is one item of the batch. Fields holds the raw decoded object.
type Row struct {
	Index  int
	Name   string
	Brand  string
	Fields map[string]any
}

// Preview is a short line per row shown before the import is confirmed.
func (r Row) Preview() string {
	price := format.Empty
	if n, err := optionalInt(r.Fields["price_min"]); err == nil && n != nil {
		price = format.Rupiah(*n)
	}
	return fmt.Sprintf("%s %s (%s)", r.Brand, r.Name, price)
}

// Parse decodes data and validates that it is a non-empty array whose items
// all carry a name and a brand.
func Parse(data []byte) ([]Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Message: "JSON tidak valid: " + err.Error()}
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, &ParseError{Message: "Data harus berupa array []"}
	}
	if len(items) == 0 {
		return nil, &ParseError{Message: "Array tidak boleh kosong"}
	}

	rows := make([]Row, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)
		name := requiredText(obj["name"])
		if name == "" {
			return nil, &ParseError{Message: fmt.Sprintf(`Item %d: "name" wajib diisi`, i+1)}
		}
		brand := requiredText(obj["brand"])
		if brand == "" {
			return nil, &ParseError{Message: fmt.Sprintf(`Item %d: "brand" wajib diisi`, i+1)}
		}
		rows = append(rows, Row{Index: i + 1, Name: name, Brand: brand, Fields: obj})
	}
	return rows, nil
}

// requiredText accepts strings and non-zero numbers, so a model named 14 is
// imported as "14".
func requiredText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil && f != 0 {
			return t.String()
		}
	}
	return ""
}
