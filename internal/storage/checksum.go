package storage

import (
	"encoding/binary"
	"hash/crc32"
)

// checksumOffset is where the trailing CRC-32 begins within a page; the
// four bytes from here to PageSize are never available to cell content.
const checksumOffset = PageSize - 4

// ComputeChecksum returns the CRC-32 (IEEE) of page[0:PageSize-4].
func ComputeChecksum(page *Page) uint32 {
	return crc32.ChecksumIEEE(page[:checksumOffset])
}

// WriteChecksum recomputes and stores the trailing checksum of page.
func WriteChecksum(page *Page) {
	binary.LittleEndian.PutUint32(page[checksumOffset:], ComputeChecksum(page))
}

// StoredChecksum returns the checksum currently stored in page's trailing
// four bytes, without recomputing it.
func StoredChecksum(page *Page) uint32 {
	return binary.LittleEndian.Uint32(page[checksumOffset:])
}

// ChecksumMatches reports whether the stored checksum matches the computed
// one.
func ChecksumMatches(page *Page) bool {
	return StoredChecksum(page) == ComputeChecksum(page)
}
