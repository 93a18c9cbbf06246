// Package storage implements the page-oriented file format: a checksummed
// database header, page-granularity disk I/O, and a clock-replacement page
// cache. The slotted table-page format built on top of it lives in the
// tablepage subpackage.
package storage

// PageId identifies a page within a database file. Page 0 is always the
// database header page; data pages start at 1.
type PageId uint64

// RowId identifies a row within a single table page.
type RowId uint64

// PageSize is the fixed size of every page in the file, including the
// header page. It must fit in a uint16 since in-page offsets are encoded
// as 16-bit little-endian integers.
const PageSize = 4096

// Page is one page's worth of bytes, as held by a Frame or handed to the
// disk manager.
type Page = [PageSize]byte
