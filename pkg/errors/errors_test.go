package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "mlhousing: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Transform",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "mlhousing: Transform: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Transform", 8, 5, 1)

	// 基本的なエラーメッセージの確認
	want := "mlhousing: Transform: dimension mismatch on axis 1 (features). Expected 8, got 5"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("SimpleImputer", "Transform")

	// 基本的なエラーメッセージの確認
	want := "mlhousing: SimpleImputer: this model is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// NotFittedError型にキャスト可能か確認
	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValueError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		param   string
		value   interface{}
		message string
		wantMsg string
	}{
		{
			name:    "with message",
			op:      "Transform",
			param:   "median_income",
			value:   -0.5,
			message: "below lowest bin edge",
			wantMsg: "mlhousing: Transform: median_income: -0.5 (below lowest bin edge)",
		},
		{
			name:    "without message",
			op:      "Fit",
			param:   "n_bins",
			value:   0,
			message: "",
			wantMsg: "mlhousing: Fit: n_bins: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.message != "" {
				err = NewValueError(tt.op, fmt.Sprintf("%s: %v (%s)", tt.param, tt.value, tt.message))
			} else {
				err = NewValueError(tt.op, fmt.Sprintf("%s: %v", tt.param, tt.value))
			}

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// ValueError型にキャスト可能か確認
			var valErr *ValueError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *ValueError")
			}
		})
	}
}

func TestNewMissingColumnError(t *testing.T) {
	err := NewMissingColumnError("LoadCSV", "median_income", []string{"households", "population"})

	// 基本的なエラーメッセージの確認
	want := `mlhousing: LoadCSV: column "median_income" not found in table (available: households, population)`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// MissingColumnError型にキャスト可能か確認
	var colErr *MissingColumnError
	if !As(err, &colErr) {
		t.Error("Error should be castable to *MissingColumnError")
	}
	if colErr.Column != "median_income" {
		t.Errorf("Column = %v, want median_income", colErr.Column)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("test_size", "must be in (0, 1)", 1.5)

	want := "mlhousing: validation failed for parameter 'test_size': must be in (0, 1) (got: 1.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewNumericalInstabilityError(t *testing.T) {
	err := NewNumericalInstabilityError("bedrooms_per_room", []float64{math.Inf(1)}, 3, 100)

	// 件数が含まれるか確認
	msg := err.Error()
	if !strings.Contains(msg, "bedrooms_per_room") {
		t.Errorf("Error() = %v, expected to contain operation name", msg)
	}
	if !strings.Contains(msg, "3 of 100") {
		t.Errorf("Error() = %v, expected to contain count summary", msg)
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Error("Error should be castable to *NumericalInstabilityError")
	}
	if numErr.Count != 3 || numErr.Total != 100 {
		t.Errorf("Count/Total = %d/%d, want 3/100", numErr.Count, numErr.Total)
	}
}

func TestWarnInvokesHandler(t *testing.T) {
	// ハンドラを差し替えて警告を捕捉
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(nil)

	warning := NewUndefinedMetricWarning("proportion_error", "overall proportion is zero", math.NaN())
	Warn(warning)

	if len(captured) != 1 {
		t.Fatalf("expected 1 captured warning, got %d", len(captured))
	}

	var metricWarn *UndefinedMetricWarning
	if !As(captured[0], &metricWarn) {
		t.Error("Warning should be castable to *UndefinedMetricWarning")
	}
	if metricWarn.Metric != "proportion_error" {
		t.Errorf("Metric = %v, want proportion_error", metricWarn.Metric)
	}
}

func TestDataConversionWarning(t *testing.T) {
	warn := NewDataConversionWarning("string", "float", "numeric column parsed from CSV text")

	want := "data converted from string to float. Reason: numeric column parsed from CSV text"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}
}

func TestWrapAndIs(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyData

	// ラップ
	wrapped := Wrap(baseErr, "in SimpleImputer.Transform")

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	// エラーメッセージの確認
	if !strings.Contains(wrapped.Error(), "in SimpleImputer.Transform") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyData

	// フォーマット付きラップ
	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "Fit", 10, 0)

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	// エラーメッセージの確認
	expectedMsg := "in Fit: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	// エラーチェーンの作成
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	// チェーン全体を確認
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
