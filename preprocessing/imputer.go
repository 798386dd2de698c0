package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlhousing/core/model"
	"github.com/YuminosukeSato/mlhousing/core/parallel"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// StrategyMedian は中央値による補完戦略
const StrategyMedian = "median"

// SimpleImputer はscikit-learn互換の欠損値補完器
// 訓練データで計算した列ごとの中央値でNaNを置き換える
//
// 学習は訓練データに対して一度だけ行い、同じインスタンスを
// テストデータのTransformに使い回す。Transformは統計量を
// 再計算しないため、テストデータの情報が統計量に混入しない。
//
// BaseEstimatorの埋め込みではなくStateManagerの合成を使う。
// エクスポートされたフィールドのみで構成されるため、学習済みの
// 補完器をencoding/gobでそのまま保存・復元できる。
type SimpleImputer struct {
	// State は学習状態を管理する
	State *model.StateManager

	// Strategy は補完戦略（現在は"median"のみ）
	Strategy string

	// Statistics は各列の補完値（学習時に計算した中央値）
	Statistics []float64

	// NFeatures は特徴量の数
	NFeatures int
}

// Transformerインターフェースの実装を確認
var _ model.Transformer = (*SimpleImputer)(nil)

// NewSimpleImputer は中央値戦略のSimpleImputerを作成する
//
// 戻り値:
//   - *SimpleImputer: 新しいSimpleImputerインスタンス
//
// 使用例:
//
//	imp := preprocessing.NewSimpleImputer()
//	XTrain, err := imp.FitTransform(trainMatrix)
//	XTest, err := imp.Transform(testMatrix) // 訓練データの中央値を適用
func NewSimpleImputer() *SimpleImputer {
	return &SimpleImputer{
		State:    model.NewStateManager(),
		Strategy: StrategyMedian,
	}
}

// Fit は訓練データから列ごとの中央値を計算する
// NaNは中央値の計算から除外される。列の全要素がNaNの場合はエラー。
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (imp *SimpleImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "empty data", errors.ErrEmptyData)
	}
	if imp.Strategy != StrategyMedian {
		return errors.NewValueError("SimpleImputer.Fit", fmt.Sprintf("unsupported strategy %q", imp.Strategy))
	}

	imp.NFeatures = c
	imp.Statistics = make([]float64, c)

	buf := make([]float64, 0, r)
	for j := 0; j < c; j++ {
		buf = buf[:0]
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if !math.IsNaN(v) {
				buf = append(buf, v)
			}
		}
		if len(buf) == 0 {
			return errors.NewValueError("SimpleImputer.Fit",
				fmt.Sprintf("column %d contains only NaN values", j))
		}
		imp.Statistics[j] = median(buf)
	}

	imp.State.SetDimensions(c, r)
	imp.State.SetFitted()
	return nil
}

// Transform は学習済みの中央値でNaNを置き換えた新しい行列を返す
// 入力行列は変更されない
//
// パラメータ:
//   - X: 変換するデータ
//
// 戻り値:
//   - mat.Matrix: 補完されたデータ
//   - error: エラーが発生した場合
func (imp *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !imp.State.IsFitted() {
		return nil, errors.NewNotFittedError("SimpleImputer", "Transform")
	}

	r, c := X.Dims()
	if c != imp.NFeatures {
		return nil, errors.NewDimensionError("SimpleImputer.Transform", imp.NFeatures, c, 1)
	}

	// 並列処理の閾値（この行数以下では逐次処理）
	const parallelThreshold = 1000

	result := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				v := X.At(i, j)
				if math.IsNaN(v) {
					v = imp.Statistics[j]
				}
				result.Set(i, j, v)
			}
		}
	})

	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
//
// パラメータ:
//   - X: 訓練・変換するデータ
//
// 戻り値:
//   - mat.Matrix: 補完されたデータ
//   - error: エラーが発生した場合
func (imp *SimpleImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := imp.Fit(X); err != nil {
		return nil, err
	}
	return imp.Transform(X)
}

// GetParams は補完器のパラメータを取得する
func (imp *SimpleImputer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"strategy": imp.Strategy,
	}
}

// String は補完器の文字列表現を返す
func (imp *SimpleImputer) String() string {
	if !imp.State.IsFitted() {
		return fmt.Sprintf("SimpleImputer(strategy=%s)", imp.Strategy)
	}
	return fmt.Sprintf("SimpleImputer(strategy=%s, n_features=%d)", imp.Strategy, imp.NFeatures)
}

// median はスライスの中央値を返す（要素数が偶数の場合は中点）
// 入力スライスは破壊的にソートされる
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
