package dataset

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

func TestNumericMatrix(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2, 3}, series.Float, "a"),
		series.New([]float64{4, math.NaN(), 6}, series.Float, "b"),
	)

	m, names, err := NumericMatrix(df)
	if err != nil {
		t.Fatalf("NumericMatrix() error = %v", err)
	}

	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v, want [a b]", names)
	}

	rows, cols := m.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("Dims() = (%d, %d), want (3, 2)", rows, cols)
	}
	if m.At(0, 0) != 1 || m.At(2, 1) != 6 {
		t.Error("matrix values do not match source columns")
	}
	if !math.IsNaN(m.At(1, 1)) {
		t.Error("NaN cell should pass through to the matrix")
	}
}

func TestNumericMatrix_IntConversionWarns(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) {
		warnings = append(warnings, w)
	})
	defer errors.SetWarningHandler(nil)

	df := dataframe.New(
		series.New([]int{1, 2, 3}, series.Int, "income_cat"),
	)

	if _, _, err := NumericMatrix(df); err != nil {
		t.Fatalf("NumericMatrix() error = %v", err)
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 conversion warning, got %d", len(warnings))
	}
	var convWarn *errors.DataConversionWarning
	if !errors.As(warnings[0], &convWarn) {
		t.Fatalf("expected DataConversionWarning, got %T", warnings[0])
	}
}

func TestNumericMatrix_StringColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"NEAR BAY", "INLAND"}, series.String, "ocean_proximity"),
	)

	_, _, err := NumericMatrix(df)
	if err == nil {
		t.Fatal("expected error for string column")
	}
	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValueError, got %T: %v", err, err)
	}
}

func TestNumericMatrix_Empty(t *testing.T) {
	_, _, err := NumericMatrix(dataframe.DataFrame{})
	if err == nil {
		t.Fatal("expected error for empty frame")
	}
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}

func TestFromMatrix(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})

	df, err := FromMatrix(m, []string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("FromMatrix() error = %v", err)
	}

	if df.Nrow() != 2 || df.Ncol() != 3 {
		t.Fatalf("shape = (%d, %d), want (2, 3)", df.Nrow(), df.Ncol())
	}
	if got := df.Col("y").Float(); got[0] != 2 || got[1] != 5 {
		t.Errorf("column y = %v, want [2 5]", got)
	}
}

func TestFromMatrix_NameMismatch(t *testing.T) {
	m := mat.NewDense(1, 2, []float64{1, 2})

	_, err := FromMatrix(m, []string{"only_one"})
	if err == nil {
		t.Fatal("expected error for name count mismatch")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %T: %v", err, err)
	}
}
