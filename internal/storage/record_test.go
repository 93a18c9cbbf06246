package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	r := require.New(t)

	values := []Value{
		UInt(0), UInt(1 << 40),
		Int(-1), Int(12345),
		Float(3.14159), Float(math.NaN()), Float(math.Inf(1)),
		Str(""), Str("hello, world"),
		Bool(true), Bool(false),
		Null(),
	}

	for _, v := range values {
		buf := v.Serialize(nil)
		got, n, err := DeserializeValue(buf)
		r.NoError(err)
		r.Equal(len(buf), n)
		r.True(v.Equal(got), "expected %#v to equal %#v", v, got)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	r := require.New(t)

	rec := Record{Values: []Value{UInt(7), Str("row"), Bool(true), Null()}}
	buf := rec.Serialize()

	got, err := DeserializeRecord(buf)
	r.NoError(err)
	r.Equal(len(rec.Values), len(got.Values))
	for i := range rec.Values {
		r.True(rec.Values[i].Equal(got.Values[i]))
	}
}

func TestDeserializeRecordTruncatedBuffer(t *testing.T) {
	r := require.New(t)

	rec := Record{Values: []Value{Str("a longer string value")}}
	buf := rec.Serialize()

	_, err := DeserializeRecord(buf[:len(buf)-2])
	r.ErrorIs(err, ErrUnexpectedEof)
}

func TestDeserializeValueInvalidTag(t *testing.T) {
	r := require.New(t)

	_, _, err := DeserializeValue([]byte{0xFF})
	r.Error(err)
}

func TestDeserializeValueInvalidUtf8(t *testing.T) {
	r := require.New(t)

	buf := []byte{byte(KindString), 2, 0xFF, 0xFE}
	_, _, err := DeserializeValue(buf)
	r.Error(err)
}
