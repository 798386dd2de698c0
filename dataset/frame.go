package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// NumericMatrix converts every column of df into a dense float64 matrix
// in column order, returning the matrix together with the column names.
// NaN cells pass through unchanged. Integer columns are converted with a
// DataConversionWarning; a string column is an error because callers are
// expected to drop categorical columns before requesting a matrix.
func NumericMatrix(df dataframe.DataFrame) (*mat.Dense, []string, error) {
	const op = "dataset.NumericMatrix"

	rows, cols := df.Nrow(), df.Ncol()
	if rows == 0 || cols == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, op)
	}

	names := df.Names()
	m := mat.NewDense(rows, cols, nil)
	for j, name := range names {
		s := df.Col(name)
		switch s.Type() {
		case series.Float:
		case series.Int:
			errors.Warn(errors.NewDataConversionWarning(
				"int", "float64",
				fmt.Sprintf("numeric matrix requires float64 values (column %s)", name),
			))
		default:
			return nil, nil, errors.NewValueError(op,
				fmt.Sprintf("column %q is not numeric (type %s)", name, s.Type()))
		}
		m.SetCol(j, s.Float())
	}
	return m, names, nil
}

// FromMatrix converts a matrix back into a DataFrame with the given
// column names, one float64 series per column.
func FromMatrix(m mat.Matrix, names []string) (dataframe.DataFrame, error) {
	const op = "dataset.FromMatrix"

	rows, cols := m.Dims()
	if len(names) != cols {
		return dataframe.DataFrame{}, errors.NewDimensionError(op, len(names), cols, 1)
	}

	ss := make([]series.Series, cols)
	for j := 0; j < cols; j++ {
		col := make([]float64, rows)
		mat.Col(col, j, m)
		ss[j] = series.New(col, series.Float, names[j])
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, op)
	}
	return df, nil
}
