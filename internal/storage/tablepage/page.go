package tablepage

// Kind reports which table-page variant page holds, without fully
// validating its contents.
func Kind(page *Page) (byte, error) {
	switch t := PageType(page); t {
	case LeafPageType, InteriorPageType:
		return t, nil
	default:
		return 0, errInvalidPageType(t)
	}
}

// IsLeaf reports whether page's type tag is the leaf tag. It does not
// validate the rest of the page.
func IsLeaf(page *Page) bool {
	return PageType(page) == LeafPageType
}

// IsInterior reports whether page's type tag is the interior tag. It does
// not validate the rest of the page.
func IsInterior(page *Page) bool {
	return PageType(page) == InteriorPageType
}

// ValidateAny validates page against whichever spec matches its declared
// page type, returning InvalidPageType if the tag is neither leaf nor
// interior.
func ValidateAny(page *Page) error {
	switch PageType(page) {
	case LeafPageType:
		return Validate(page, LeafSpec)
	case InteriorPageType:
		return Validate(page, InteriorSpec)
	default:
		return errInvalidPageType(PageType(page))
	}
}
