package tablepage

import "encoding/binary"

// PageSize is the fixed size of every page. It mirrors storage.PageSize;
// duplicated here as an untyped constant so this package has no import
// dependency on the parent storage package (it operates on raw page
// bytes handed to it by whatever owns the cache).
const PageSize = 4096

const (
	// LeafPageType identifies a leaf table page.
	LeafPageType byte = 1
	// InteriorPageType identifies an interior table page.
	InteriorPageType byte = 2
)

// offsets within the shared page header, common to both leaf and interior
// pages.
const (
	offPageType     = 0
	offReserved     = 1
	offCellCount    = 2
	offContentStart = 4
)

// Spec describes one table-page kind: its type tag and the size of its
// fixed header (which the slot directory begins immediately after).
type Spec struct {
	PageType   byte
	HeaderSize int
}

// Page is a page's raw bytes, as handed in by the page cache.
type Page = [PageSize]byte

func validateSpec(spec Spec) {
	if spec.HeaderSize < 4 {
		panic("tablepage: header size must be at least 4 bytes")
	}
}

// Init zero-fills page and writes its type, an empty cell count, and a
// content region spanning the whole page.
func Init(page *Page, spec Spec) {
	validateSpec(spec)
	for i := range page {
		page[i] = 0
	}
	page[offPageType] = spec.PageType
	binary.LittleEndian.PutUint16(page[offCellCount:], 0)
	binary.LittleEndian.PutUint16(page[offContentStart:], PageSize)
}

// PageType reads the page-type tag without validating anything else.
func PageType(page *Page) byte {
	return page[offPageType]
}

// Validate checks that page has the expected type and that its header
// fields are within bounds.
func Validate(page *Page, spec Spec) error {
	validateSpec(spec)
	if page[offPageType] != spec.PageType {
		return errInvalidPageType(page[offPageType])
	}

	cellCount := CellCount(page)
	contentStart := ContentStart(page)

	slotDirEnd := slotDirEndForCount(spec, cellCount)
	if slotDirEnd > contentStart || contentStart > PageSize {
		return errCorruptPage("invalid cell content start")
	}
	return nil
}

// CellCount returns the number of populated slots.
func CellCount(page *Page) int {
	return int(binary.LittleEndian.Uint16(page[offCellCount:]))
}

func setCellCount(page *Page, n int) {
	binary.LittleEndian.PutUint16(page[offCellCount:], uint16(n))
}

// ContentStart returns the offset where the cell-content region begins
// (it grows downward toward PageSize).
func ContentStart(page *Page) int {
	return int(binary.LittleEndian.Uint16(page[offContentStart:]))
}

func setContentStart(page *Page, offset int) {
	binary.LittleEndian.PutUint16(page[offContentStart:], uint16(offset))
}

// FreeSpace returns the number of bytes available between the slot
// directory's current tail and contentStart.
func FreeSpace(page *Page, spec Spec) int {
	cellCount := CellCount(page)
	return ContentStart(page) - slotDirEndForCount(spec, cellCount)
}

func slotDirEndForCount(spec Spec, cellCount int) int {
	return spec.HeaderSize + 2*cellCount
}

func slotPosition(spec Spec, slotIndex int) int {
	return spec.HeaderSize + 2*slotIndex
}

func slotOffset(page *Page, spec Spec, slotIndex int) int {
	pos := slotPosition(spec, slotIndex)
	return int(binary.LittleEndian.Uint16(page[pos:]))
}

func writeSlotOffsetRaw(page *Page, spec Spec, slotIndex int, offset int) {
	pos := slotPosition(spec, slotIndex)
	binary.LittleEndian.PutUint16(page[pos:], uint16(offset))
}

// SetSlotOffset replaces one existing slot's cell offset in place.
func SetSlotOffset(page *Page, spec Spec, slotIndex int, offset int) {
	writeSlotOffsetRaw(page, spec, slotIndex, offset)
}

// CellBytesAtSlot returns the slice of page bytes starting at the given
// slot's cell offset and running to the end of the page. Callers that
// know the cell's exact length re-slice it further.
func CellBytesAtSlot(page *Page, spec Spec, slotIndex int) ([]byte, error) {
	offset := slotOffset(page, spec, slotIndex)
	contentStart := ContentStart(page)
	if offset < contentStart || offset >= PageSize {
		return nil, errCorruptCell(slotIndex)
	}
	return page[offset:], nil
}

// tryAppendCell reserves cellLen bytes at the low end of the content
// region (i.e. immediately before the current contentStart) without
// mutating the page. It returns the new cell's offset, or a spaceError if
// there isn't enough room once the slot directory has grown by extraSlots
// entries.
func tryAppendCell(page *Page, spec Spec, cellLen int, extraSlots int) (int, error) {
	cellCount := CellCount(page)
	slotDirEnd := slotDirEndForCount(spec, cellCount+extraSlots)
	contentStart := ContentStart(page)

	available := contentStart - slotDirEnd
	if cellLen > available {
		return 0, &spaceError{needed: cellLen, available: available}
	}
	return contentStart - cellLen, nil
}

// TryAppendCell is the read-only reservation check for an update that
// doesn't grow the slot directory.
func TryAppendCell(page *Page, spec Spec, cellLen int) (int, error) {
	return tryAppendCell(page, spec, cellLen, 0)
}

// TryAppendCellForInsert is the read-only reservation check for an insert,
// which also grows the slot directory by one entry.
func TryAppendCellForInsert(page *Page, spec Spec, cellLen int) (int, error) {
	return tryAppendCell(page, spec, cellLen, 1)
}

// CommitAppend writes cellBytes at offset (computed by a prior
// TryAppendCell/TryAppendCellForInsert call) and advances contentStart.
func CommitAppend(page *Page, offset int, cellBytes []byte) {
	copy(page[offset:], cellBytes)
	setContentStart(page, offset)
}

// InsertSlot shifts slots at [insertIndex, cellCount) up by one, writes the
// new slot at insertIndex, and increments cellCount.
func InsertSlot(page *Page, spec Spec, insertIndex int, offset int) {
	cellCount := CellCount(page)
	for i := cellCount; i > insertIndex; i-- {
		prev := slotOffset(page, spec, i-1)
		writeSlotOffsetRaw(page, spec, i, prev)
	}
	writeSlotOffsetRaw(page, spec, insertIndex, offset)
	setCellCount(page, cellCount+1)
}

// RemoveSlot shifts slots after removeIndex down by one, zero-fills the
// vacated tail slot, and decrements cellCount.
func RemoveSlot(page *Page, spec Spec, removeIndex int) {
	cellCount := CellCount(page)
	for i := removeIndex; i < cellCount-1; i++ {
		next := slotOffset(page, spec, i+1)
		writeSlotOffsetRaw(page, spec, i, next)
	}
	writeSlotOffsetRaw(page, spec, cellCount-1, 0)
	setCellCount(page, cellCount-1)
}

// FindRowId does a binary search over the page's slots for rowId, using
// rowIdAt to decode the rowId at a given slot index. It returns the slot
// index and whether an exact match was found. When no exact match exists,
// the returned index is the insertion point that keeps slots sorted.
func FindRowId(page *Page, rowIdAt func(*Page, int) (uint64, error), cellCount int, rowId uint64) (int, bool, error) {
	lo, hi := 0, cellCount
	for lo < hi {
		mid := (lo + hi) / 2
		midRowId, err := rowIdAt(page, mid)
		if err != nil {
			return 0, false, err
		}
		switch {
		case midRowId == rowId:
			return mid, true, nil
		case midRowId < rowId:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false, nil
}

// ReadU64At reads a little-endian uint64 from page at offset.
func ReadU64At(page *Page, offset int) uint64 {
	return binary.LittleEndian.Uint64(page[offset:])
}

// WriteU64At writes v as little-endian into page at offset.
func WriteU64At(page *Page, offset int, v uint64) {
	binary.LittleEndian.PutUint64(page[offset:], v)
}
