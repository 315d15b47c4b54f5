package keyset

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// TypeTag is the closed set of semantic types the cursor codec knows how to
// round-trip. The two UTC datetime tags carry their own precision because
// the wire form stores them as integer epoch values, not as timestamps;
// TypeDate and TypeNaiveDatetime travel as RFC 3339 strings.
type TypeTag string

const (
	TypeID                 TypeTag = "id"
	TypeInteger            TypeTag = "integer"
	TypeString             TypeTag = "string"
	TypeBoolean            TypeTag = "boolean"
	TypeFloat              TypeTag = "float"
	TypeUTCDatetimeSeconds TypeTag = "utc_datetime"
	TypeUTCDatetimeMicros  TypeTag = "utc_datetime_usec"
	TypeNaiveDatetime      TypeTag = "naive_datetime"
	TypeDate               TypeTag = "date"
	TypeBinary             TypeTag = "binary"
	TypeNull               TypeTag = "null"
)

func (t TypeTag) Valid() bool {
	switch t {
	case TypeID, TypeInteger, TypeString, TypeBoolean, TypeFloat,
		TypeUTCDatetimeSeconds, TypeUTCDatetimeMicros, TypeNaiveDatetime,
		TypeDate, TypeBinary, TypeNull:
		return true
	default:
		return false
	}
}

// isTemporal reports whether the tag stores its wire value as an epoch
// integer rather than the value passed through unchanged.
func (t TypeTag) isTemporal() bool {
	return t == TypeUTCDatetimeSeconds || t == TypeUTCDatetimeMicros
}

// encodeWire converts a boundary value into the representation the cursor
// codec stores on the wire (spec §4.1's "encoding proceeds type-by-type").
func encodeWire(tag TypeTag, v any) any {
	if v == nil {
		return nil
	}

	switch tag {
	case TypeUTCDatetimeSeconds:
		if t, ok := asTime(v); ok {
			return t.UTC().Unix()
		}
	case TypeUTCDatetimeMicros:
		if t, ok := asTime(v); ok {
			return t.UTC().UnixMicro()
		}
	}

	return v
}

// decodeWire is encodeWire's inverse, applied at cursor-decode time using
// the caller's own type-tag vector (Config.fields), per spec §4.1.
//
// The "passed through unchanged" tags still need type-directed conversion
// here even though encodeWire leaves them alone: the wire form only ever
// carries JSON's own basic types (string, json.Number, bool), so a []byte
// or time.Time boundary value has already been flattened to a string by
// json.Marshal by the time it reaches this function, and a bare int64 has
// been flattened to a number that, decoded without care, silently loses
// precision above 2^53. Each tag below undoes exactly the flattening JSON
// did on the way out.
func decodeWire(tag TypeTag, wire any) (any, error) {
	if wire == nil {
		return nil, nil
	}

	switch tag {
	case TypeUTCDatetimeSeconds:
		sec, ok := asInt64(wire)
		if !ok {
			return nil, ErrCursorCorrupt
		}
		return time.Unix(sec, 0).UTC(), nil
	case TypeUTCDatetimeMicros:
		usec, ok := asInt64(wire)
		if !ok {
			return nil, ErrCursorCorrupt
		}
		return time.UnixMicro(usec).UTC(), nil
	case TypeDate, TypeNaiveDatetime:
		s, ok := wire.(string)
		if !ok {
			return nil, ErrCursorCorrupt
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, ErrCursorCorrupt
		}
		return t, nil
	case TypeBinary:
		s, ok := wire.(string)
		if !ok {
			return nil, ErrCursorCorrupt
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, ErrCursorCorrupt
		}
		return b, nil
	case TypeID, TypeInteger:
		n, ok := asInt64(wire)
		if !ok {
			return nil, ErrCursorCorrupt
		}
		return n, nil
	case TypeFloat:
		f, ok := asFloat64(wire)
		if !ok {
			return nil, ErrCursorCorrupt
		}
		return f, nil
	default:
		return wire, nil
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
