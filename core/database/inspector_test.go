package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE assays (HoleID TEXT, "From" REAL, "To" REAL, CuPct REAL)`).Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "assays")
	require.NoError(t, err)
	assert.Len(t, columns, 4)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "text", colMap["holeid"])
	assert.Equal(t, "real", colMap["from"])
	assert.Equal(t, "real", colMap["cupct"])

	// PRAGMA table_info returns an empty result for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestHasColumn(t *testing.T) {
	columns := []ColumnInfo{{Field: "holeid"}, {Field: "from"}}

	assert.True(t, HasColumn(columns, "HoleID"))
	assert.True(t, HasColumn(columns, " from "))
	assert.False(t, HasColumn(columns, "to"))
	assert.False(t, HasColumn(nil, "holeid"))
}
