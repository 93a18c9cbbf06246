package storage

import "encoding/binary"

// databaseMagic identifies a file as belonging to this format. It is
// exactly 16 bytes including the trailing NUL, matching the on-disk layout.
var databaseMagic = [16]byte{'d', 'a', 't', 'a', 'b', 'a', 's', ' ', 'f', 'o', 'r', 'm', 'a', 't', '1', 0}

const (
	headerMagicOffset     = 0
	headerPageSizeOffset  = 16
	headerPageCountOffset = 18
)

// DatabaseHeader is the parsed contents of page 0.
type DatabaseHeader struct {
	PageSize  uint16
	PageCount uint64
}

// InitHeader zero-fills page, writes the magic, PageSize, an initial page
// count of 1, and a valid checksum. Used when creating a brand new file.
func InitHeader(page *Page) {
	for i := range page {
		page[i] = 0
	}
	copy(page[headerMagicOffset:], databaseMagic[:])
	binary.LittleEndian.PutUint16(page[headerPageSizeOffset:], PageSize)
	binary.LittleEndian.PutUint64(page[headerPageCountOffset:], 1)
	WriteChecksum(page)
}

// ParseHeader decodes page 0 and validates it against the actual page count
// derived from the file's length. It does not check the checksum; callers
// validate that separately since the disk manager is the one that knows
// whether the whole page round-tripped correctly.
func ParseHeader(page *Page, fileDerivedPageCount uint64) (DatabaseHeader, error) {
	if string(page[headerMagicOffset:headerMagicOffset+16]) != string(databaseMagic[:]) {
		return DatabaseHeader{}, errInvalidDatabaseHeader("invalid magic")
	}

	pageSize := binary.LittleEndian.Uint16(page[headerPageSizeOffset:])
	if pageSize != PageSize {
		return DatabaseHeader{}, errInvalidDatabaseHeader("invalid page size")
	}

	pageCount := binary.LittleEndian.Uint64(page[headerPageCountOffset:])
	if pageCount < 1 {
		return DatabaseHeader{}, errInvalidDatabaseHeader("page count must be at least one")
	}
	if pageCount != fileDerivedPageCount {
		return DatabaseHeader{}, errInvalidDatabaseHeader("page count does not match file size")
	}

	return DatabaseHeader{PageSize: pageSize, PageCount: pageCount}, nil
}

// WriteHeader stores h's page count into page (page size is always the
// compile-time constant) and rewrites the checksum.
func WriteHeader(page *Page, h DatabaseHeader) {
	binary.LittleEndian.PutUint16(page[headerPageSizeOffset:], PageSize)
	binary.LittleEndian.PutUint64(page[headerPageCountOffset:], h.PageCount)
	WriteChecksum(page)
}
