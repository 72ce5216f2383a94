package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonHoles(t *testing.T) {
	l := []LithologyInterval{lith("H1", 0, 1, "A"), lith("H2", 0, 1, "A"), lith("H1", 1, 2, "B")}
	a := []AssayInterval{{Hole: "H2"}, {Hole: "H3"}, {Hole: "H1"}}

	fl, fa, common := CommonHoles(l, a)
	assert.Equal(t, []HoleID{"H1", "H2"}, common.Sorted())
	assert.Len(t, fl, 3)
	assert.Len(t, fa, 2)
	for _, iv := range fa {
		assert.NotEqual(t, HoleID("H3"), iv.Hole)
	}

	t.Run("Empty intersection", func(t *testing.T) {
		fl, fa, common := CommonHoles(l[:1], a[:1])
		assert.Empty(t, fl)
		assert.Empty(t, fa)
		assert.Empty(t, common)
	})
}

func TestDiffHoles(t *testing.T) {
	d := DiffHoles(
		HoleSet{"A": {}, "B": {}, "C": {}},
		HoleSet{"B": {}, "D": {}},
	)
	assert.Equal(t, []HoleID{"A", "C"}, d.MissingInAssay)
	assert.Equal(t, []HoleID{"D"}, d.MissingInLithology)
	assert.False(t, d.Empty())

	assert.True(t, DiffHoles(HoleSet{"A": {}}, HoleSet{"A": {}}).Empty())
}
