package storage

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// ValueKind is the tag byte identifying a Value's variant on disk.
type ValueKind byte

const (
	KindUInt ValueKind = iota + 1
	KindInt
	KindFloat
	KindString
	KindBool
	KindNull
)

// RecordError is a closed-kind error raised by record (de)serialization.
type RecordError struct {
	msg string
}

func (e *RecordError) Error() string { return e.msg }

var (
	// ErrUnexpectedEof means the buffer ran out before a value finished
	// decoding.
	ErrUnexpectedEof = &RecordError{"storage: unexpected end of record buffer"}
	// ErrBufferTooSmall means the destination buffer can't hold the
	// serialized form.
	ErrBufferTooSmall = &RecordError{"storage: buffer too small"}
)

// errInvalidTag reports an unrecognized value tag byte.
func errInvalidTag(tag byte) error {
	return &RecordError{fmt.Sprintf("storage: invalid value tag %d", tag)}
}

// errInvalidData reports a value whose payload doesn't decode cleanly
// (e.g. non-UTF-8 string bytes).
func errInvalidData(reason string) error {
	return &RecordError{fmt.Sprintf("storage: invalid value data: %s", reason)}
}

// Value is the tagged union stored in leaf-page payloads: UInt, Int,
// Float, String, Bool, or Null.
type Value struct {
	kind ValueKind
	u    uint64
	i    int64
	f    float64
	s    string
	b    bool
}

func UInt(v uint64) Value   { return Value{kind: KindUInt, u: v} }
func Int(v int64) Value     { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func Str(v string) Value    { return Value{kind: KindString, s: v} }
func Bool(v bool) Value     { return Value{kind: KindBool, b: v} }
func Null() Value           { return Value{kind: KindNull} }

func (v Value) Kind() ValueKind   { return v.kind }
func (v Value) AsUInt() uint64    { return v.u }
func (v Value) AsInt() int64      { return v.i }
func (v Value) AsFloat() float64  { return v.f }
func (v Value) AsString() string  { return v.s }
func (v Value) AsBool() bool      { return v.b }

// Equal compares two values for equality, comparing floats by raw bits so
// that NaN, -0, and subnormals compare as the spec's round-trip property
// requires rather than by IEEE ==.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUInt:
		return v.u == other.u
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return math.Float64bits(v.f) == math.Float64bits(other.f)
	case KindString:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	case KindNull:
		return true
	default:
		return false
	}
}

// serializedSize returns the encoded byte length of v, including its tag.
func (v Value) serializedSize() int {
	switch v.kind {
	case KindUInt:
		return 1 + UvarintSize(v.u)
	case KindInt:
		return 1 + VarintSize(v.i)
	case KindFloat:
		return 1 + 8
	case KindString:
		n := len(v.s)
		return 1 + UvarintSize(uint64(n)) + n
	case KindBool:
		return 1 + 1
	case KindNull:
		return 1
	default:
		return 1
	}
}

// Serialize appends v's tag and payload to buf, returning the extended
// slice.
func (v Value) Serialize(buf []byte) []byte {
	buf = append(buf, byte(v.kind))
	switch v.kind {
	case KindUInt:
		buf = EncodeUvarint(buf, v.u)
	case KindInt:
		buf = EncodeVarint(buf, v.i)
	case KindFloat:
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v.f))
		buf = append(buf, tmp[:]...)
	case KindString:
		buf = EncodeUvarint(buf, uint64(len(v.s)))
		buf = append(buf, v.s...)
	case KindBool:
		if v.b {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case KindNull:
		// no payload
	}
	return buf
}

// DeserializeValue reads one tagged value from the front of buf, returning
// the value and the number of bytes consumed.
func DeserializeValue(buf []byte) (Value, int, error) {
	if len(buf) < 1 {
		return Value{}, 0, ErrUnexpectedEof
	}
	tag := ValueKind(buf[0])
	rest := buf[1:]
	switch tag {
	case KindUInt:
		u, n, err := DecodeUvarint(rest)
		if err != nil {
			return Value{}, 0, err
		}
		return UInt(u), 1 + n, nil
	case KindInt:
		i, n, err := DecodeVarint(rest)
		if err != nil {
			return Value{}, 0, err
		}
		return Int(i), 1 + n, nil
	case KindFloat:
		if len(rest) < 8 {
			return Value{}, 0, ErrUnexpectedEof
		}
		bits := binary.LittleEndian.Uint64(rest[:8])
		return Float(math.Float64frombits(bits)), 1 + 8, nil
	case KindString:
		n, nn, err := DecodeUvarint(rest)
		if err != nil {
			return Value{}, 0, err
		}
		rest = rest[nn:]
		if uint64(len(rest)) < n {
			return Value{}, 0, ErrUnexpectedEof
		}
		strBytes := rest[:n]
		if !utf8.Valid(strBytes) {
			return Value{}, 0, errInvalidData("not valid UTF-8")
		}
		return Str(string(strBytes)), 1 + nn + int(n), nil
	case KindBool:
		if len(rest) < 1 {
			return Value{}, 0, ErrUnexpectedEof
		}
		return Bool(rest[0] != 0), 1 + 1, nil
	case KindNull:
		return Null(), 1, nil
	default:
		return Value{}, 0, errInvalidTag(buf[0])
	}
}

// Record is an ordered tuple of values, framed with a varint-encoded total
// byte length (including the length prefix itself).
type Record struct {
	Values []Value
}

// serializedSize returns the total encoded length of r, including its
// length prefix.
func (r Record) serializedSize() int {
	dataSize := 0
	for _, v := range r.Values {
		dataSize += v.serializedSize()
	}
	prefixSize := UvarintSize(uint64(dataSize))
	// The length prefix's own size can change the total, which can in
	// turn change the prefix's size; one fixed point iteration suffices
	// because varint width only grows across powers of 128.
	for {
		total := dataSize + prefixSize
		newPrefixSize := UvarintSize(uint64(total))
		if newPrefixSize == prefixSize {
			return total
		}
		prefixSize = newPrefixSize
	}
}

// Serialize encodes r as a varint-prefixed length followed by its
// concatenated values.
func (r Record) Serialize() []byte {
	total := r.serializedSize()
	buf := make([]byte, 0, total)
	buf = EncodeUvarint(buf, uint64(total))
	for _, v := range r.Values {
		buf = v.Serialize(buf)
	}
	return buf
}

// DeserializeRecord reads a varint-prefixed record from buf. It returns
// ErrUnexpectedEof if buf is too short for the declared length.
func DeserializeRecord(buf []byte) (Record, error) {
	total, n, err := DecodeUvarint(buf)
	if err != nil {
		return Record{}, err
	}
	if uint64(len(buf)) < total {
		return Record{}, ErrUnexpectedEof
	}

	var values []Value
	consumed := n
	for uint64(consumed) < total {
		v, vn, err := DeserializeValue(buf[consumed:])
		if err != nil {
			return Record{}, err
		}
		values = append(values, v)
		consumed += vn
	}
	return Record{Values: values}, nil
}
