package tablepage

import "encoding/binary"

// InteriorSpec describes the interior table-page kind: a 16-byte fixed
// header (the 8-byte shared header plus an 8-byte rightmostChild field at
// offset 8).
var InteriorSpec = Spec{PageType: InteriorPageType, HeaderSize: 16}

const offRightmostChild = 8

// InteriorCell is a decoded interior (separator) cell: every child to the
// left of RowId routes through LeftChild.
type InteriorCell struct {
	LeftChild uint64
	RowId     uint64
}

// InitInterior initializes page as an empty interior page with the given
// rightmost child.
func InitInterior(page *Page, rightmostChild uint64) {
	Init(page, InteriorSpec)
	WriteU64At(page, offRightmostChild, rightmostChild)
}

// RightmostChild returns the page's rightmost-child pointer: the child
// routed to when no separator's rowId is >= the search key.
func RightmostChild(page *Page) uint64 {
	return ReadU64At(page, offRightmostChild)
}

// SetRightmostChild updates the page's rightmost-child pointer.
func SetRightmostChild(page *Page, child uint64) {
	WriteU64At(page, offRightmostChild, child)
}

func interiorRowIdAt(page *Page, slotIndex int) (uint64, error) {
	cellBytes, err := CellBytesAtSlot(page, InteriorSpec, slotIndex)
	if err != nil {
		return 0, err
	}
	if len(cellBytes) < 16 {
		return 0, errCorruptCell(slotIndex)
	}
	return binary.LittleEndian.Uint64(cellBytes[8:16]), nil
}

func decodeInteriorCellAt(page *Page, slotIndex int) (InteriorCell, error) {
	cellBytes, err := CellBytesAtSlot(page, InteriorSpec, slotIndex)
	if err != nil {
		return InteriorCell{}, err
	}
	if len(cellBytes) < 16 {
		return InteriorCell{}, errCorruptCell(slotIndex)
	}
	leftChild := binary.LittleEndian.Uint64(cellBytes[0:8])
	rowId := binary.LittleEndian.Uint64(cellBytes[8:16])
	return InteriorCell{LeftChild: leftChild, RowId: rowId}, nil
}

func encodeInteriorCell(leftChild, rowId uint64) []byte {
	cell := make([]byte, 16)
	binary.LittleEndian.PutUint64(cell[0:8], leftChild)
	binary.LittleEndian.PutUint64(cell[8:16], rowId)
	return cell
}

// InteriorSearch binary-searches page for rowId and returns its separator
// cell if present.
func InteriorSearch(page *Page, rowId uint64) (InteriorCell, bool, error) {
	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, interiorRowIdAt, cellCount, rowId)
	if err != nil || !found {
		return InteriorCell{}, false, err
	}
	cell, err := decodeInteriorCellAt(page, idx)
	return cell, err == nil, err
}

// ChildForRowId returns the child page to descend into when routing a
// search for rowId: the left child of the first separator whose rowId is
// >= target, or rightmostChild if no such separator exists.
func ChildForRowId(page *Page, rowId uint64) (uint64, error) {
	cellCount := CellCount(page)
	idx, _, err := FindRowId(page, interiorRowIdAt, cellCount, rowId)
	if err != nil {
		return 0, err
	}
	if idx >= cellCount {
		return RightmostChild(page), nil
	}
	cell, err := decodeInteriorCellAt(page, idx)
	if err != nil {
		return 0, err
	}
	return cell.LeftChild, nil
}

func writeInteriorCellWithRetry(page *Page, cell []byte, forInsert bool) (int, error) {
	var offset int
	var err error
	if forInsert {
		offset, err = TryAppendCellForInsert(page, InteriorSpec, len(cell))
	} else {
		offset, err = TryAppendCell(page, InteriorSpec, len(cell))
	}
	if err == nil {
		CommitAppend(page, offset, cell)
		return offset, nil
	}

	if _, ok := err.(*spaceError); !ok {
		return 0, err
	}

	if defragErr := DefragmentInterior(page); defragErr != nil {
		return 0, defragErr
	}

	if forInsert {
		offset, err = TryAppendCellForInsert(page, InteriorSpec, len(cell))
	} else {
		offset, err = TryAppendCell(page, InteriorSpec, len(cell))
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

// InteriorInsert inserts a new (leftChild, rowId) separator, keeping slots
// sorted by rowId. Fails with a DuplicateRowId error if rowId is already
// present.
func InteriorInsert(page *Page, leftChild, rowId uint64) error {
	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, interiorRowIdAt, cellCount, rowId)
	if err != nil {
		return err
	}
	if found {
		return errDuplicateRowId(rowId)
	}

	cell := encodeInteriorCell(leftChild, rowId)
	offset, err := writeInteriorCellWithRetry(page, cell, true)
	if err != nil {
		return err
	}
	InsertSlot(page, InteriorSpec, idx, offset)
	return nil
}

// InteriorUpdate overwrites an existing separator's leftChild in place;
// interior cells are fixed-size so no reallocation is ever needed.
func InteriorUpdate(page *Page, rowId, leftChild uint64) error {
	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, interiorRowIdAt, cellCount, rowId)
	if err != nil {
		return err
	}
	if !found {
		return errRowIdNotFound(rowId)
	}
	cellBytes, err := CellBytesAtSlot(page, InteriorSpec, idx)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(cellBytes[0:8], leftChild)
	return nil
}

// InteriorDelete removes rowId's separator slot.
func InteriorDelete(page *Page, rowId uint64) error {
	cellCount := CellCount(page)
	idx, found, err := FindRowId(page, interiorRowIdAt, cellCount, rowId)
	if err != nil {
		return err
	}
	if !found {
		return errRowIdNotFound(rowId)
	}
	RemoveSlot(page, InteriorSpec, idx)
	return nil
}

// DefragmentInterior rewrites page's separator cells contiguously at the
// high end, preserving the rightmost-child pointer and slot order.
func DefragmentInterior(page *Page) error {
	cellCount := CellCount(page)
	rightmost := RightmostChild(page)

	cells := make([]InteriorCell, cellCount)
	for i := 0; i < cellCount; i++ {
		c, err := decodeInteriorCellAt(page, i)
		if err != nil {
			return err
		}
		cells[i] = c
	}

	InitInterior(page, rightmost)
	for i, c := range cells {
		cell := encodeInteriorCell(c.LeftChild, c.RowId)
		offset, err := TryAppendCellForInsert(page, InteriorSpec, len(cell))
		if err != nil {
			return errCorruptPage("defragment could not re-fit live cells")
		}
		CommitAppend(page, offset, cell)
		InsertSlot(page, InteriorSpec, i, offset)
	}
	return nil
}
