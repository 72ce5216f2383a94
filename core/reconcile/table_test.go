package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *MergedTable {
	return NewMergedTable([]string{"AU", "CU"}, []Row{
		{Hole: "H1", From: 0, To: 2.5, Rock: "A", HasRock: true, Values: []Value{Some(1.25), Missing}},
		{Hole: "H1", From: 2.5, To: 4, Values: []Value{Missing, Some(0.5)}},
		{Hole: "H2", From: 0, To: 1, Rock: "B", HasRock: true, Values: []Value{Some(3), Some(4)}},
	})
}

func TestMergedTable_Columns(t *testing.T) {
	mt := sampleTable()
	assert.Equal(t, []string{"ID", "FROM", "TO", "ROCK", "AU", "CU"}, mt.Columns())
	assert.Equal(t, []HoleID{"H1", "H2"}, mt.Holes())

	kind, ok := mt.Kind("AU")
	assert.True(t, ok)
	assert.Equal(t, KindNumber, kind)
	kind, ok = mt.Kind("ROCK")
	assert.True(t, ok)
	assert.Equal(t, KindText, kind)
	_, ok = mt.Kind("ZN")
	assert.False(t, ok)
}

func TestMergedTable_Immutable(t *testing.T) {
	mt := sampleTable()

	r := mt.At(0)
	r.Values[0] = Some(100)
	r.Rock = "Z"

	rows := mt.Rows()
	rows[0].Values[0] = Some(200)

	assert.Equal(t, Some(1.25), mt.Number(0, "AU"))
	rock, ok := mt.Text(0, ColRock)
	assert.True(t, ok)
	assert.Equal(t, "A", rock)
}

func TestMergedTable_Where(t *testing.T) {
	mt := sampleTable()
	sub := mt.Where(func(i int) bool {
		id, _ := mt.Text(i, ColID)
		return id == "H2"
	})

	assert.Equal(t, 1, sub.Len())
	assert.Equal(t, 3, mt.Len())
	assert.Equal(t, mt.RunID(), sub.RunID())

	empty := mt.Where(func(int) bool { return false })
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, mt.Columns(), empty.Columns())
}

func TestMergedTable_Records(t *testing.T) {
	recs := sampleTable().Records()
	assert.Equal(t, []string{"H1", "0", "2.5", "A", "1.25", ""}, recs[0])
	assert.Equal(t, []string{"H1", "2.5", "4", "", "", "0.5"}, recs[1])
}

func TestMergedTable_JSON(t *testing.T) {
	data, err := json.Marshal(sampleTable())
	require.NoError(t, err)

	var decoded struct {
		RunID   string          `json:"run_id"`
		Columns []string        `json:"columns"`
		Rows    [][]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotEmpty(t, decoded.RunID)
	assert.Len(t, decoded.Rows, 3)
	assert.Equal(t, []interface{}{"H1", 2.5, 4.0, nil, nil, 0.5}, decoded.Rows[1])
}

func TestValue_JSON(t *testing.T) {
	data, err := json.Marshal([]Value{Some(1.5), Missing})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, null]`, string(data))

	var back []Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Value{Some(1.5), Missing}, back)
}
