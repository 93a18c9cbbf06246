package storage

import (
	"io"
	"os"
)

// DiskManager owns a single database file and performs page-granularity
// reads, writes, and allocation. It is single-threaded: callers are
// responsible for serializing access, exactly as the rest of this package
// assumes (see the concurrency notes in the module's top-level docs).
type DiskManager struct {
	file      *os.File
	pageCount uint64
}

// OpenDiskManager opens (or creates) the file at path. A brand new (empty)
// file is initialized with a header page and truncated to exactly
// PageSize. An existing file is validated: its length must be a multiple
// of PageSize, and its header page must have a correct checksum and parse
// cleanly against the file's actual page count.
func OpenDiskManager(path string) (*DiskManager, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errIO(err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errIO(err)
	}

	dm := &DiskManager{file: file}

	if info.Size() == 0 {
		var page Page
		InitHeader(&page)
		if _, err := file.WriteAt(page[:], 0); err != nil {
			_ = file.Close()
			return nil, errIO(err)
		}
		if err := file.Truncate(PageSize); err != nil {
			_ = file.Close()
			return nil, errIO(err)
		}
		if err := file.Sync(); err != nil {
			_ = file.Close()
			return nil, errIO(err)
		}
		dm.pageCount = 1
		return dm, nil
	}

	if info.Size()%PageSize != 0 {
		_ = file.Close()
		return nil, errInvalidFileSize(info.Size())
	}

	fileDerivedPageCount := uint64(info.Size() / PageSize)

	var page Page
	if _, err := file.ReadAt(page[:], 0); err != nil {
		_ = file.Close()
		return nil, errIO(err)
	}
	if !ChecksumMatches(&page) {
		_ = file.Close()
		return nil, errInvalidPageChecksum(0)
	}
	header, err := ParseHeader(&page, fileDerivedPageCount)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	dm.pageCount = header.PageCount
	return dm, nil
}

// PageCount returns the number of pages currently in the file, including
// the header page.
func (d *DiskManager) PageCount() uint64 {
	return d.pageCount
}

// Close closes the underlying file handle.
func (d *DiskManager) Close() error {
	return d.file.Close()
}

func (d *DiskManager) offset(id PageId) int64 {
	return int64(id) * PageSize
}

// ReadPage reads page id into buf, verifying its checksum.
func (d *DiskManager) ReadPage(id PageId, buf *Page) error {
	if uint64(id) >= d.pageCount {
		return errInvalidPageId(id)
	}
	if _, err := d.file.ReadAt(buf[:], d.offset(id)); err != nil && err != io.EOF {
		return errIO(err)
	}
	if !ChecksumMatches(buf) {
		return errInvalidPageChecksum(id)
	}
	return nil
}

// WritePage writes buf to page id, recomputing and overwriting the
// trailing checksum so callers cannot inject arbitrary checksum bytes.
// The write is fsynced before returning.
func (d *DiskManager) WritePage(id PageId, buf *Page) error {
	if uint64(id) >= d.pageCount {
		return errInvalidPageId(id)
	}

	var page Page
	copy(page[:], buf[:])
	WriteChecksum(&page)

	if _, err := d.file.WriteAt(page[:], d.offset(id)); err != nil {
		return errIO(err)
	}
	if err := d.file.Sync(); err != nil {
		return errIO(err)
	}
	return nil
}

// NewPage extends the file by one zero-filled, checksummed page, updates
// and rewrites the header, fsyncs, and returns the new page's id (equal to
// the prior page count).
func (d *DiskManager) NewPage() (PageId, error) {
	id := PageId(d.pageCount)

	var page Page
	WriteChecksum(&page)
	if _, err := d.file.WriteAt(page[:], d.offset(id)); err != nil {
		return 0, errIO(err)
	}

	newCount := d.pageCount + 1

	var header Page
	if _, err := d.file.ReadAt(header[:], 0); err != nil {
		return 0, errIO(err)
	}
	WriteHeader(&header, DatabaseHeader{PageSize: PageSize, PageCount: newCount})
	if _, err := d.file.WriteAt(header[:], 0); err != nil {
		return 0, errIO(err)
	}

	if err := d.file.Sync(); err != nil {
		return 0, errIO(err)
	}

	d.pageCount = newCount
	return id, nil
}
