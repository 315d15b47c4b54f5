package keyset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cursor_EncodeDecode_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	values := []BoundaryValue{
		{Ref: FieldRef{Column: "charged_at"}, Type: TypeUTCDatetimeSeconds, Value: ts},
		{Ref: FieldRef{Column: "id"}, Type: TypeID, Value: int64(42)},
	}

	c := EncodeCursor(values)
	require.NotNil(t, c)

	token := c.String()
	assert.NotEmpty(t, token)

	decoded, err := DecodeCursor(token, []TypeTag{TypeUTCDatetimeSeconds, TypeID})
	require.NoError(t, err)
	require.NotNil(t, decoded)

	got := decoded.Values()
	require.Len(t, got, 2)
	gotTime, ok := got[0].(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(gotTime))
	assert.EqualValues(t, 42, got[1])
}

func Test_Cursor_EmptyToken(t *testing.T) {
	decoded, err := DecodeCursor("", []TypeTag{TypeID})
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func Test_Cursor_EmptyValues_ReturnsNil(t *testing.T) {
	assert.Nil(t, EncodeCursor(nil))
}

func Test_Cursor_IsEmpty(t *testing.T) {
	var nilCursor *Cursor
	assert.True(t, nilCursor.IsEmpty())

	empty := &Cursor{}
	assert.True(t, empty.IsEmpty())

	nonEmpty := &Cursor{values: []any{1}}
	assert.False(t, nonEmpty.IsEmpty())
}

func Test_DecodeCursor_CorruptBase64(t *testing.T) {
	_, err := DecodeCursor("not valid base64!!!", []TypeTag{TypeID})
	require.ErrorIs(t, err, ErrCursorCorrupt)
}

func Test_DecodeCursor_CorruptJSON(t *testing.T) {
	token := cursorEncoding.EncodeToString([]byte("not json"))
	_, err := DecodeCursor(token, []TypeTag{TypeID})
	require.ErrorIs(t, err, ErrCursorCorrupt)
}

func Test_DecodeCursor_LengthMismatch(t *testing.T) {
	values := []BoundaryValue{
		{Ref: FieldRef{Column: "id"}, Type: TypeID, Value: int64(1)},
	}
	c := EncodeCursor(values)
	token := c.String()

	_, err := DecodeCursor(token, []TypeTag{TypeID, TypeString})
	require.ErrorIs(t, err, ErrCursorCorrupt)
}

func Test_DecodeCursor_TamperedElement(t *testing.T) {
	raw := `["not-a-number"]`
	token := cursorEncoding.EncodeToString([]byte(raw))

	_, err := DecodeCursor(token, []TypeTag{TypeUTCDatetimeSeconds})
	require.ErrorIs(t, err, ErrCursorCorrupt)
}

func Test_Cursor_EncodeDecode_RoundTrip_LargeIDAndBinaryAndDate(t *testing.T) {
	const bigID = int64(9007199254740993) // > 2^53, loses precision through float64

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	blob := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	values := []BoundaryValue{
		{Ref: FieldRef{Column: "id"}, Type: TypeID, Value: bigID},
		{Ref: FieldRef{Column: "reference"}, Type: TypeBinary, Value: blob},
		{Ref: FieldRef{Column: "signup_date"}, Type: TypeDate, Value: day},
	}

	c := EncodeCursor(values)
	require.NotNil(t, c)
	token := c.String()

	decoded, err := DecodeCursor(token, []TypeTag{TypeID, TypeBinary, TypeDate})
	require.NoError(t, err)
	require.NotNil(t, decoded)

	got := decoded.Values()
	require.Len(t, got, 3)

	gotID, ok := got[0].(int64)
	require.True(t, ok, "expected int64, got %T", got[0])
	assert.Equal(t, bigID, gotID)

	gotBlob, ok := got[1].([]byte)
	require.True(t, ok, "expected []byte, got %T", got[1])
	assert.Equal(t, blob, gotBlob)

	gotDate, ok := got[2].(time.Time)
	require.True(t, ok, "expected time.Time, got %T", got[2])
	assert.True(t, day.Equal(gotDate))
}

func Test_Cursor_NaiveDatetime_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)

	values := []BoundaryValue{
		{Ref: FieldRef{Column: "local_time"}, Type: TypeNaiveDatetime, Value: ts},
	}
	c := EncodeCursor(values)
	token := c.String()

	decoded, err := DecodeCursor(token, []TypeTag{TypeNaiveDatetime})
	require.NoError(t, err)

	gotTime, ok := decoded.Values()[0].(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(gotTime))
}

func Test_Cursor_NullValuePreserved(t *testing.T) {
	values := []BoundaryValue{
		{Ref: FieldRef{Column: "deleted_at"}, Type: TypeUTCDatetimeSeconds, Value: nil},
	}
	c := EncodeCursor(values)
	token := c.String()

	decoded, err := DecodeCursor(token, []TypeTag{TypeUTCDatetimeSeconds})
	require.NoError(t, err)
	require.Len(t, decoded.Values(), 1)
	assert.Nil(t, decoded.Values()[0])
}
