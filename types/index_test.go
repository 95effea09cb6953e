package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideFaces(t *testing.T) {
	{ // Side face numbering: even = lesser, odd = greater, axis = sf/2
		for a := Dim(0); a < 4; a++ {
			ls, gs := LesserSideFacePerpToAxis(a), GreaterSideFacePerpToAxis(a)
			assert.Equal(t, SideFace(2*a), ls)
			assert.Equal(t, SideFace(2*a+1), gs)
			assert.True(t, ls.IsLesser())
			assert.False(t, gs.IsLesser())
			assert.Equal(t, a, ls.PerpAxis())
			assert.Equal(t, a, gs.PerpAxis())
		}
	}
	{
		f := Interior()
		assert.True(t, f.IsInterior())
		assert.Panics(t, func() { f.SideFace() })
		f = Side(SideFace(3))
		assert.False(t, f.IsInterior())
		assert.Equal(t, SideFace(3), f.SideFace())
		assert.Equal(t, "SideFace(3:greater,axis=1)", f.String())
	}
}

func TestErrors(t *testing.T) {
	assert.Nil(t, CheckRange("fe", 0, 1))
	err := CheckRange("fe", 1, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	err = CheckRange("fe", -1, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Panics(t, func() { MustBeInRange("side", 5, 5) })
	err = InvalidConfigf("ldim %d is %d", 1, 0)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Equal(t, "invalid configuration: ldim 1 is 0", err.Error())
}
