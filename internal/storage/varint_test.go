package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	r := require.New(t)

	vectors := []uint64{
		0, 1, 127, 128, 255, 256, 16383, 16384, 2097151, 2097152,
		uint64(^uint32(0)), ^uint64(0),
	}
	for _, v := range vectors {
		buf := EncodeUvarint(nil, v)
		r.Equal(UvarintSize(v), len(buf))

		got, n, err := DecodeUvarint(buf)
		r.NoError(err)
		r.Equal(len(buf), n)
		r.Equal(v, got)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	r := require.New(t)

	vectors := []int64{
		0, 1, -1, 63, -64, 64, -65, 1000000, -1000000,
	}
	for _, v := range vectors {
		buf := EncodeVarint(nil, v)
		r.Equal(VarintSize(v), len(buf))

		got, n, err := DecodeVarint(buf)
		r.NoError(err)
		r.Equal(len(buf), n)
		r.Equal(v, got)
	}
}

func TestDecodeUvarintTruncated(t *testing.T) {
	r := require.New(t)

	buf := EncodeUvarint(nil, 1<<34)
	_, _, err := DecodeUvarint(buf[:len(buf)-1])
	r.ErrorIs(err, ErrInvalidVarInt)
}
