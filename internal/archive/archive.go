/*
Package archive implements the keyed binary archive used to persist visual
instructions between runs and to ship them to clients.

An archive is a flat map of field names to values, encoded with msgpack.
Absent optional values are written as explicit nils so the key set of an
archive is stable regardless of which optionals were populated. Decoding is
field-by-field with explicit presence checks: a required field that is
missing or nil produces a typed MissingFieldError instead of a zero value
leaking into the caller.
*/
package archive

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MissingFieldError reports a required archive field that was absent or nil.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("archive field %q missing", e.Key)
}

// Encoder accumulates named fields and marshals them with msgpack.
type Encoder struct {
	fields map[string]interface{}
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{fields: make(map[string]interface{})}
}

// PutString stores a required string field.
func (e *Encoder) PutString(key, val string) {
	e.fields[key] = val
}

// PutOptionalString stores an optional string field. A nil value is written
// verbatim as msgpack nil.
func (e *Encoder) PutOptionalString(key string, val *string) {
	if val == nil {
		e.fields[key] = nil
		return
	}
	e.fields[key] = *val
}

// PutInt stores an integer field.
func (e *Encoder) PutInt(key string, val int) {
	e.fields[key] = val
}

// PutFloat stores a float field.
func (e *Encoder) PutFloat(key string, val float64) {
	e.fields[key] = val
}

// PutBlobs stores a list of nested archive blobs.
func (e *Encoder) PutBlobs(key string, blobs [][]byte) {
	e.fields[key] = blobs
}

// Bytes marshals the accumulated fields.
func (e *Encoder) Bytes() ([]byte, error) {
	data, err := msgpack.Marshal(e.fields)
	if err != nil {
		return nil, fmt.Errorf("encoding archive: %w", err)
	}
	return data, nil
}

// Decoder reads named fields out of an encoded archive.
type Decoder struct {
	fields map[string]interface{}
}

// NewDecoder unmarshals an archive blob.
func NewDecoder(data []byte) (*Decoder, error) {
	var fields map[string]interface{}
	if err := msgpack.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decoding archive: %w", err)
	}
	return &Decoder{fields: fields}, nil
}

// Has reports whether the key is present with a non-nil value.
func (d *Decoder) Has(key string) bool {
	v, ok := d.fields[key]
	return ok && v != nil
}

// String reads a required string field. Missing keys and nil values both
// fail with a MissingFieldError.
func (d *Decoder) String(key string) (string, error) {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return "", &MissingFieldError{Key: key}
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("archive field %q: expected string, got %T", key, v)
	}
	return s, nil
}

// OptionalString reads an optional string field. Missing keys, nil values
// and non-string values all yield nil.
func (d *Decoder) OptionalString(key string) *string {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// Float reads a float field. Like Int there is no failure path; missing or
// non-numeric values yield zero.
func (d *Decoder) Float(key string) float64 {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// Blobs reads a required list of nested archive blobs.
func (d *Decoder) Blobs(key string) ([][]byte, error) {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return nil, &MissingFieldError{Key: key}
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("archive field %q: expected list, got %T", key, v)
	}
	blobs := make([][]byte, 0, len(raw))
	for i, item := range raw {
		b, ok := item.([]byte)
		if !ok {
			return nil, fmt.Errorf("archive field %q[%d]: expected bytes, got %T", key, i, item)
		}
		blobs = append(blobs, b)
	}
	return blobs, nil
}

// Int reads an integer field. There is no failure path: missing keys, nil
// values and non-numeric values all yield zero.
func (d *Decoder) Int(key string) int {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
