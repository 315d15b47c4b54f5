package keyset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_encodeWire_Temporal(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 500000000, time.UTC)

	sec := encodeWire(TypeUTCDatetimeSeconds, ts)
	assert.Equal(t, ts.Unix(), sec)

	usec := encodeWire(TypeUTCDatetimeMicros, ts)
	assert.Equal(t, ts.UnixMicro(), usec)
}

func Test_encodeWire_NonTemporal_PassesThrough(t *testing.T) {
	assert.Equal(t, "abc", encodeWire(TypeString, "abc"))
	assert.Equal(t, 42, encodeWire(TypeInteger, 42))
	assert.Nil(t, encodeWire(TypeInteger, nil))
}

func Test_decodeWire_Temporal_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	sec := encodeWire(TypeUTCDatetimeSeconds, ts)
	got, err := decodeWire(TypeUTCDatetimeSeconds, sec)
	require.NoError(t, err)
	assert.True(t, ts.Equal(got.(time.Time)))

	usec := encodeWire(TypeUTCDatetimeMicros, ts)
	got, err = decodeWire(TypeUTCDatetimeMicros, usec)
	require.NoError(t, err)
	assert.True(t, ts.Equal(got.(time.Time)))
}

func Test_decodeWire_Null(t *testing.T) {
	got, err := decodeWire(TypeUTCDatetimeSeconds, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func Test_decodeWire_CorruptTemporal(t *testing.T) {
	_, err := decodeWire(TypeUTCDatetimeSeconds, "not-a-number")
	require.ErrorIs(t, err, ErrCursorCorrupt)
}

func Test_decodeWire_ID_FromJSONNumber_PreservesPrecision(t *testing.T) {
	// This is the shape decodeWire actually sees once cursor.go decodes the
	// wire element with UseNumber(): a json.Number, not a native int64.
	const bigID = int64(9007199254740993) // > 2^53

	got, err := decodeWire(TypeID, json.Number("9007199254740993"))
	require.NoError(t, err)
	assert.Equal(t, bigID, got)
}

func Test_decodeWire_Integer_FromJSONNumber(t *testing.T) {
	got, err := decodeWire(TypeInteger, json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}

func Test_decodeWire_Float_FromJSONNumber(t *testing.T) {
	got, err := decodeWire(TypeFloat, json.Number("3.5"))
	require.NoError(t, err)
	assert.Equal(t, 3.5, got)
}

func Test_decodeWire_Binary_FromBase64String(t *testing.T) {
	blob := []byte{1, 2, 3, 250}
	wire := encodeWire(TypeBinary, blob)

	// encodeWire leaves []byte alone; json.Marshal is what turns it into a
	// base64 string, which is the shape decodeWire actually receives.
	raw, err := json.Marshal(wire)
	require.NoError(t, err)
	var asWire any
	require.NoError(t, json.Unmarshal(raw, &asWire))

	got, err := decodeWire(TypeBinary, asWire)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func Test_decodeWire_Binary_CorruptBase64(t *testing.T) {
	_, err := decodeWire(TypeBinary, "not-base64!!!")
	require.ErrorIs(t, err, ErrCursorCorrupt)
}

func Test_decodeWire_Date_FromRFC3339String(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	wire := encodeWire(TypeDate, day)

	raw, err := json.Marshal(wire)
	require.NoError(t, err)
	var asWire any
	require.NoError(t, json.Unmarshal(raw, &asWire))

	got, err := decodeWire(TypeDate, asWire)
	require.NoError(t, err)
	gotTime, ok := got.(time.Time)
	require.True(t, ok)
	assert.True(t, day.Equal(gotTime))
}

func Test_decodeWire_Date_CorruptString(t *testing.T) {
	_, err := decodeWire(TypeDate, "not-a-date")
	require.ErrorIs(t, err, ErrCursorCorrupt)
}

func Test_TypeTag_Valid(t *testing.T) {
	assert.True(t, TypeID.Valid())
	assert.True(t, TypeNull.Valid())
	assert.False(t, TypeTag("bogus").Valid())
}
