package keyset

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

var cursorEncoding = base64.RawURLEncoding

// Cursor is an opaque, URL-safe token representing a position in a sorted
// result stream. The zero value (and a nil *Cursor) represents "no cursor".
//
// The wire form is compact JSON -- an array of the boundary values in field
// order, each already put through encodeWire -- base64url-encoded without
// padding. JSON's decoder only ever produces the handful of basic Go types
// (string, json.Number, bool, []any, map[string]any, nil): there is no way for a
// decoded cursor to reference a foreign type, construct an executable
// object, or otherwise smuggle code, which satisfies spec §4.1's safety
// requirement without needing a dedicated binary framing.
type Cursor struct {
	values []any
}

// IsEmpty reports whether the cursor carries no values -- the "no cursor"
// case, distinct from a cursor holding n nulls.
func (c *Cursor) IsEmpty() bool {
	return c == nil || len(c.values) == 0
}

// Values returns the decoded, type-corrected boundary values in field order.
func (c *Cursor) Values() []any {
	if c == nil {
		return nil
	}
	return c.values
}

// String encodes the cursor to its wire form. An empty cursor encodes to "".
func (c *Cursor) String() string {
	if c.IsEmpty() {
		return ""
	}

	raw, err := json.Marshal(c.values)
	if err != nil {
		panic(fmt.Errorf("keyset: cannot marshal cursor: %w", err))
	}

	return cursorEncoding.EncodeToString(raw)
}

// EncodeCursor builds the outgoing cursor for a boundary row, encoding each
// value through its TypeTag (spec §4.1). Values() on the result returns the
// wire-shaped values, not the original typed ones -- callers only ever need
// String() from a cursor built this way; Values() is meaningful after
// DecodeCursor.
func EncodeCursor(values []BoundaryValue) *Cursor {
	if len(values) == 0 {
		return nil
	}

	wire := make([]any, len(values))
	for i, v := range values {
		wire[i] = encodeWire(v.Type, v.Value)
	}

	return &Cursor{values: wire}
}

// DecodeCursor parses a possibly-empty base64url token against the supplied
// type vector, applying the inverse temporal conversion at each position
// (spec §4.1's decode contract). An empty string decodes to a nil *Cursor
// ("no cursor"), never an error.
func DecodeCursor(token string, types []TypeTag) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := cursorEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrCursorCorrupt, err)
	}

	var wire []json.RawMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrCursorCorrupt, err)
	}

	if len(wire) != len(types) {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrCursorCorrupt, len(types), len(wire))
	}

	values := make([]any, len(wire))
	for i, raw := range wire {
		// UseNumber keeps integer elements as json.Number instead of
		// float64, so an id above 2^53 doesn't lose precision before
		// decodeWire ever sees it.
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrCursorCorrupt, i, err)
		}

		decoded, err := decodeWire(types[i], v)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrCursorCorrupt, i, err)
		}
		values[i] = decoded
	}

	return &Cursor{values: values}, nil
}
