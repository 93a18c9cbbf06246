package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitHeaderAndParse(t *testing.T) {
	r := require.New(t)

	var page Page
	InitHeader(&page)
	r.True(ChecksumMatches(&page))

	h, err := ParseHeader(&page, 1)
	r.NoError(err)
	r.Equal(uint16(PageSize), h.PageSize)
	r.Equal(uint64(1), h.PageCount)
}

func TestWriteHeaderUpdatesPageCount(t *testing.T) {
	r := require.New(t)

	var page Page
	InitHeader(&page)
	WriteHeader(&page, DatabaseHeader{PageCount: 5})

	h, err := ParseHeader(&page, 5)
	r.NoError(err)
	r.Equal(uint64(5), h.PageCount)
	r.True(ChecksumMatches(&page))
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	r := require.New(t)

	var page Page
	InitHeader(&page)
	page[0] = 'x'

	_, err := ParseHeader(&page, 1)
	r.Error(err)
	var se *Error
	r.ErrorAs(err, &se)
	r.Equal(ErrInvalidDatabaseHeader, se.Kind)
}

func TestParseHeaderRejectsPageCountMismatch(t *testing.T) {
	r := require.New(t)

	var page Page
	InitHeader(&page)

	_, err := ParseHeader(&page, 2)
	r.Error(err)
}
