package specprep_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specprep/specprep/pkg/specprep"
)

func TestMatrix_SetAndRow(t *testing.T) {
	m := specprep.NewMatrix(2, 3)
	require.NoError(t, m.SetRow(0, []float64{1, 2, 3}))
	m.Set(1, 2, 9)

	require.Equal(t, []float64{1, 2, 3}, m.Row(0))
	require.Equal(t, 9.0, m.At(1, 2))
	require.Equal(t, []float64{1, 2, 3, 0, 0, 9}, m.Data)
}

func TestMatrix_SetRowWrongLength(t *testing.T) {
	m := specprep.NewMatrix(1, 3)
	err := m.SetRow(0, []float64{1, 2})
	require.True(t, errors.Is(err, specprep.ErrShapeMismatch))
}

func TestMatrix_KeepColumns(t *testing.T) {
	m := &specprep.Matrix{Rows: 2, Cols: 3, Data: []float64{1, 2, 3, 4, 5, 6}}

	out, err := m.KeepColumns([]bool{true, false, true})
	require.NoError(t, err)
	require.Equal(t, 2, out.Rows)
	require.Equal(t, 2, out.Cols)
	require.Equal(t, []float64{1, 3, 4, 6}, out.Data)

	// the source is untouched
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data)

	_, err = m.KeepColumns([]bool{true})
	require.ErrorIs(t, err, specprep.ErrShapeMismatch)
}

func TestVStackMatrices(t *testing.T) {
	a := &specprep.Matrix{Rows: 1, Cols: 2, Data: []float64{1, 2}}
	b := &specprep.Matrix{Rows: 2, Cols: 2, Data: []float64{3, 4, 5, 6}}

	out, err := specprep.VStackMatrices(a, b)
	require.NoError(t, err)
	require.Equal(t, 3, out.Rows)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, out.Data)

	c := specprep.NewMatrix(1, 3)
	_, err = specprep.VStackMatrices(a, c)
	require.ErrorIs(t, err, specprep.ErrShapeMismatch)
}
