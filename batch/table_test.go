package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	names := []string{"a", "b"}
	cols := map[string][]float64{
		"a": {1, 2, 3},
		"b": {4, 5, 6},
	}

	table, err := NewTable(names, cols)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, names, table.ColumnNames())
	assert.Equal(t, []float64{4, 5, 6}, table.Column("b"))
	assert.Equal(t, []float64{2, 5}, table.Row(1))
	assert.Nil(t, table.Column("missing"))
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable(nil, nil)
	require.Error(t, err)

	_, err = NewTable([]string{"a"}, map[string][]float64{})
	require.ErrorContains(t, err, `missing column "a"`)

	_, err = NewTable([]string{"a", "b"}, map[string][]float64{
		"a": {1, 2},
		"b": {1},
	})
	require.ErrorContains(t, err, "rows")
}

func TestTableColumnNamesCopied(t *testing.T) {
	table, err := NewTable([]string{"a"}, map[string][]float64{"a": {1}})
	require.NoError(t, err)

	names := table.ColumnNames()
	names[0] = "mutated"

	assert.Equal(t, []string{"a"}, table.ColumnNames())
}
