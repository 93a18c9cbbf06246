// Package tablepage implements the slotted-page layout shared by leaf and
// interior table pages: a fixed header, a slot directory growing up from
// it, and a cell-content region growing down from contentStart.
package tablepage

import "fmt"

// ErrorKind enumerates the closed set of ways a table-page operation can
// fail.
type ErrorKind int

const (
	ErrInvalidPageType ErrorKind = iota
	ErrCorruptPage
	ErrCorruptCell
	ErrDuplicateRowId
	ErrRowIdNotFound
	ErrCellTooLarge
	ErrPageFull
)

// Error is a closed-kind error raised by table-page operations.
type Error struct {
	Kind      ErrorKind
	PageType  byte
	Reason    string
	SlotIndex int
	RowId     uint64
	Len       int
	Needed    int
	Available int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidPageType:
		return fmt.Sprintf("tablepage: invalid page type %d", e.PageType)
	case ErrCorruptPage:
		return fmt.Sprintf("tablepage: corrupt page: %s", e.Reason)
	case ErrCorruptCell:
		return fmt.Sprintf("tablepage: corrupt cell at slot %d", e.SlotIndex)
	case ErrDuplicateRowId:
		return fmt.Sprintf("tablepage: duplicate row id %d", e.RowId)
	case ErrRowIdNotFound:
		return fmt.Sprintf("tablepage: row id %d not found", e.RowId)
	case ErrCellTooLarge:
		return fmt.Sprintf("tablepage: cell too large: %d bytes", e.Len)
	case ErrPageFull:
		return fmt.Sprintf("tablepage: page full: needed %d, available %d", e.Needed, e.Available)
	default:
		return "tablepage: unknown error"
	}
}

func errInvalidPageType(t byte) error {
	return &Error{Kind: ErrInvalidPageType, PageType: t}
}

func errCorruptPage(reason string) error {
	return &Error{Kind: ErrCorruptPage, Reason: reason}
}

func errCorruptCell(slot int) error {
	return &Error{Kind: ErrCorruptCell, SlotIndex: slot}
}

func errDuplicateRowId(id uint64) error {
	return &Error{Kind: ErrDuplicateRowId, RowId: id}
}

func errRowIdNotFound(id uint64) error {
	return &Error{Kind: ErrRowIdNotFound, RowId: id}
}

func errCellTooLarge(n int) error {
	return &Error{Kind: ErrCellTooLarge, Len: n}
}

func errPageFull(needed, available int) error {
	return &Error{Kind: ErrPageFull, Needed: needed, Available: available}
}

// spaceError is an internal (unexported) signal used by tryAppendCell to
// report insufficient room without mutating the page; callers translate it
// into a PageFull Error only after a defragment retry also fails.
type spaceError struct {
	needed    int
	available int
}

func (e *spaceError) Error() string {
	return fmt.Sprintf("tablepage: insufficient space: needed %d, available %d", e.needed, e.available)
}
