package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	tbl := New("lith", []string{"HoleID", " From ", "To", "Rock"}, nil)

	tests := []struct {
		name   string
		column string
		want   int
		ok     bool
	}{
		{"Exact", "HoleID", 0, true},
		{"Case Insensitive", "holeid", 0, true},
		{"Trimmed Header", "From", 1, true},
		{"Missing", "Depth", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tbl.Index(tt.column)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	var nilTable *Table
	assert.False(t, nilTable.Has("HoleID"))
	assert.Equal(t, 0, nilTable.Len())
}

func TestCell(t *testing.T) {
	tbl := New("assay", []string{"HoleID", "From", "Cu"}, [][]string{
		{" DH1 ", "0", "1.5"},
		{"DH2", "1"},
	})

	assert.Equal(t, "DH1", tbl.Cell(0, 0))
	assert.Equal(t, "", tbl.Cell(1, 2), "short rows read as empty cells")
	assert.Equal(t, "", tbl.Cell(0, -1))
}

func TestDistinct(t *testing.T) {
	tbl := New("lith", []string{"HoleID", "Rock"}, [][]string{
		{"DH2", "SST"},
		{"DH1", "GRN"},
		{"DH1", ""},
		{"DH2", "SST"},
	})

	assert.Equal(t, []string{"GRN", "SST"}, tbl.Distinct("rock"))
	assert.Equal(t, []string{"DH1", "DH2"}, tbl.Distinct("HoleID"))
	assert.Empty(t, tbl.Distinct("Missing"))
}
