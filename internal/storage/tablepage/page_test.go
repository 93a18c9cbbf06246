package tablepage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindAndPredicates(t *testing.T) {
	r := require.New(t)

	var leaf Page
	InitLeaf(&leaf)
	k, err := Kind(&leaf)
	r.NoError(err)
	r.Equal(LeafPageType, k)
	r.True(IsLeaf(&leaf))
	r.False(IsInterior(&leaf))

	var interior Page
	InitInterior(&interior, 0)
	k, err = Kind(&interior)
	r.NoError(err)
	r.Equal(InteriorPageType, k)
	r.True(IsInterior(&interior))
	r.False(IsLeaf(&interior))
}

func TestKindRejectsUnknownType(t *testing.T) {
	r := require.New(t)

	var page Page
	_, err := Kind(&page)
	r.Error(err)
	var te *Error
	r.ErrorAs(err, &te)
	r.Equal(ErrInvalidPageType, te.Kind)
}

func TestValidateAnyDispatchesByType(t *testing.T) {
	r := require.New(t)

	var leaf Page
	InitLeaf(&leaf)
	r.NoError(ValidateAny(&leaf))

	var interior Page
	InitInterior(&interior, 5)
	r.NoError(ValidateAny(&interior))
}
