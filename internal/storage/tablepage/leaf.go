package tablepage

import (
	"encoding/binary"
	"math"
)

// LeafSpec describes the leaf table-page kind: an 8-byte fixed header
// (pageType, reserved, cellCount, contentStart) with no kind-specific
// fields beyond that.
var LeafSpec = Spec{PageType: LeafPageType, HeaderSize: 8}

// LeafCell is a decoded leaf cell: a row id and its payload bytes,
// borrowed from the page's backing array.
type LeafCell struct {
	RowId   uint64
	Payload []byte
}

// InitLeaf initializes page as an empty leaf page.
func InitLeaf(page *Page) {
	Init(page, LeafSpec)
}

func leafRowIdAt(page *Page, slotIndex int) (uint64, error) {
	cellBytes, err := CellBytesAtSlot(page, LeafSpec, slotIndex)
	if err != nil {
		return 0, err
	}
	if len(cellBytes) < 10 {
		return 0, errCorruptCell(slotIndex)
	}
	return binary.LittleEndian.Uint64(cellBytes[2:10]), nil
}

func decodeLeafCellAt(page *Page, slotIndex int) (LeafCell, error) {
	cellBytes, err := CellBytesAtSlot(page, LeafSpec, slotIndex)
	if err != nil {
		return LeafCell{}, err
	}
	if len(cellBytes) < 10 {
		return LeafCell{}, errCorruptCell(slotIndex)
	}
	payloadLen := int(binary.LittleEndian.Uint16(cellBytes[0:2]))
	rowId := binary.LittleEndian.Uint64(cellBytes[2:10])
	if len(cellBytes) < 10+payloadLen {
		return LeafCell{}, errCorruptCell(slotIndex)
	}
	return LeafCell{RowId: rowId, Payload: cellBytes[10 : 10+payloadLen]}, nil
}

func encodeLeafCell(rowId uint64, payload []byte) []byte {
	cell := make([]byte, 10+len(payload))
	binary.LittleEndian.PutUint16(cell[0:2], uint16(len(payload)))
	binary.LittleEndian.PutUint64(cell[2:10], rowId)
	copy(cell[10:], payload)
	return cell
}

// LeafSearch binary-searches page for rowId and returns its cell if
// present.
func LeafSearch(page *Page, rowId uint64) (LeafCell, bool, error) {
	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, leafRowIdAt, cellCount, rowId)
	if err != nil || !found {
		return LeafCell{}, false, err
	}
	cell, err := decodeLeafCellAt(page, idx)
	return cell, err == nil, err
}

// writeLeafCellWithRetry tries to append cell, defragmenting once and
// retrying if the first attempt reports insufficient space.
func writeLeafCellWithRetry(page *Page, cell []byte, forInsert bool) (int, error) {
	var offset int
	var err error
	if forInsert {
		offset, err = TryAppendCellForInsert(page, LeafSpec, len(cell))
	} else {
		offset, err = TryAppendCell(page, LeafSpec, len(cell))
	}
	if err == nil {
		CommitAppend(page, offset, cell)
		return offset, nil
	}

	if _, ok := err.(*spaceError); !ok {
		return 0, err
	}

	if defragErr := DefragmentLeaf(page); defragErr != nil {
		return 0, defragErr
	}

	if forInsert {
		offset, err = TryAppendCellForInsert(page, LeafSpec, len(cell))
	} else {
		offset, err = TryAppendCell(page, LeafSpec, len(cell))
	}
	if err != nil {
		if spaceErr, ok := err.(*spaceError); ok {
			return 0, errPageFull(spaceErr.needed, spaceErr.available)
		}
		return 0, err
	}
	CommitAppend(page, offset, cell)
	return offset, nil
}

// LeafInsert inserts (rowId, payload) into page, keeping slots sorted by
// rowId. Fails with a DuplicateRowId error if rowId is already present.
func LeafInsert(page *Page, rowId uint64, payload []byte) error {
	if len(payload) > math.MaxUint16 {
		return errCellTooLarge(len(payload))
	}

	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, leafRowIdAt, cellCount, rowId)
	if err != nil {
		return err
	}
	if found {
		return errDuplicateRowId(rowId)
	}

	cell := encodeLeafCell(rowId, payload)
	offset, err := writeLeafCellWithRetry(page, cell, true)
	if err != nil {
		return err
	}
	InsertSlot(page, LeafSpec, idx, offset)
	return nil
}

// LeafUpdate replaces the payload for an existing rowId. If the new cell's
// encoded size matches the old one it's overwritten in place; otherwise a
// new cell is appended (defragmenting if needed) and the slot retargeted,
// leaving the old bytes as reclaimable dead space.
func LeafUpdate(page *Page, rowId uint64, payload []byte) error {
	if len(payload) > math.MaxUint16 {
		return errCellTooLarge(len(payload))
	}

	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, leafRowIdAt, cellCount, rowId)
	if err != nil {
		return err
	}
	if !found {
		return errRowIdNotFound(rowId)
	}

	existing, err := decodeLeafCellAt(page, idx)
	if err != nil {
		return err
	}

	newCell := encodeLeafCell(rowId, payload)
	if len(newCell) == 10+len(existing.Payload) {
		// Overwrite in place: the cell's existing slot already points at
		// its offset, and the encoded size hasn't changed, so no slot
		// directory or contentStart update is needed.
		cellBytes, err := CellBytesAtSlot(page, LeafSpec, idx)
		if err != nil {
			return err
		}
		copy(cellBytes, newCell)
		return nil
	}

	offset, err := writeLeafCellWithRetry(page, newCell, false)
	if err != nil {
		return err
	}
	SetSlotOffset(page, LeafSpec, idx, offset)
	return nil
}

// LeafDelete removes rowId's slot, shifting later slots down. The cell
// bytes themselves are left untouched (dead space) until a defragment.
func LeafDelete(page *Page, rowId uint64) error {
	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, leafRowIdAt, cellCount, rowId)
	if err != nil {
		return err
	}
	if !found {
		return errRowIdNotFound(rowId)
	}
	RemoveSlot(page, LeafSpec, idx)
	return nil
}

// DefragmentLeaf rewrites page's cells contiguously at the high end,
// reclaiming gaps left by updates and deletes, while preserving slot
// order (and hence rowId order).
func DefragmentLeaf(page *Page) error {
	cellCount := CellCount(page)
	cells := make([][]byte, cellCount)
	for i := 0; i < cellCount; i++ {
		c, err := decodeLeafCellAt(page, i)
		if err != nil {
			return err
		}
		cells[i] = encodeLeafCell(c.RowId, c.Payload)
	}

	InitLeaf(page)
	for i, cell := range cells {
		offset, err := TryAppendCellForInsert(page, LeafSpec, len(cell))
		if err != nil {
			return errCorruptPage("defragment could not re-fit live cells")
		}
		CommitAppend(page, offset, cell)
		InsertSlot(page, LeafSpec, i, offset)
	}
	return nil
}
