package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/mlhousing/core/model"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// BinDiscretizer は連続値を右閉区間のビンに離散化する
// 境界 [e0, e1, ..., ek] はk個のビン (e0, e1], (e1, e2], ..., (e(k-1), ek]
// を定義し、序数ラベル 1..k を割り当てる。境界上の値は下側のビンに入る。
//
// 中央値所得のカテゴリ化に使う場合、最後の境界に+Infを指定することで
// 上限なしの最上位ビンを表現できる。
type BinDiscretizer struct {
	model.BaseEstimator

	// Edges は昇順のビン境界（len >= 2）
	Edges []float64

	// NBins はビンの数 (len(Edges) - 1)
	NBins int
}

// NewBinDiscretizer は指定した境界のBinDiscretizerを作成する
//
// パラメータ:
//   - edges: 昇順のビン境界
//
// 使用例:
//
//	disc := preprocessing.NewBinDiscretizer([]float64{0, 1.5, 3.0, 4.5, 6.0, math.Inf(1)})
//	labels, err := disc.FitTransform(incomes) // 1..5のラベル
func NewBinDiscretizer(edges []float64) *BinDiscretizer {
	return &BinDiscretizer{
		Edges: edges,
	}
}

// Fit はビン境界を検証して離散化の準備をする
// 境界は固定値のためデータから学習する統計量はない
//
// パラメータ:
//   - values: 離散化対象のデータ（検証のみに使用）
//
// 戻り値:
//   - error: 境界が不正、またはデータが空の場合
func (d *BinDiscretizer) Fit(values []float64) error {
	if len(values) == 0 {
		return errors.NewModelError("BinDiscretizer.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(d.Edges) < 2 {
		return errors.NewValidationError("edges", "need at least 2 bin edges", len(d.Edges))
	}
	for i := 1; i < len(d.Edges); i++ {
		if !(d.Edges[i-1] < d.Edges[i]) {
			return errors.NewValidationError("edges", "bin edges must be strictly ascending", d.Edges)
		}
	}

	d.NBins = len(d.Edges) - 1
	d.SetFitted()
	return nil
}

// Transform は各値に序数ラベル 1..NBins を割り当てる
// NaNおよび範囲外の値（最初の境界以下、最後の境界より大きい値）はエラー
//
// パラメータ:
//   - values: 離散化するデータ
//
// 戻り値:
//   - []int: 各値のビンラベル
//   - error: エラーが発生した場合
func (d *BinDiscretizer) Transform(values []float64) ([]int, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("BinDiscretizer", "Transform")
	}

	labels := make([]int, len(values))
	last := d.Edges[len(d.Edges)-1]
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, errors.NewValueError("BinDiscretizer.Transform",
				fmt.Sprintf("value at row %d is NaN and cannot be assigned a bin", i))
		}
		// SearchFloat64sは edges[idx] >= v となる最小のidxを返すため、
		// v ∈ (edges[idx-1], edges[idx]] のときidxがそのままラベルになる
		idx := sort.SearchFloat64s(d.Edges, v)
		if idx == 0 || idx == len(d.Edges) {
			return nil, errors.NewValueError("BinDiscretizer.Transform",
				fmt.Sprintf("value %v at row %d is outside the bin range (%v, %v]", v, i, d.Edges[0], last))
		}
		labels[i] = idx
	}

	return labels, nil
}

// FitTransform は境界を検証し、同じデータを離散化する
func (d *BinDiscretizer) FitTransform(values []float64) ([]int, error) {
	if err := d.Fit(values); err != nil {
		return nil, err
	}
	return d.Transform(values)
}

// GetParams は離散化器のパラメータを取得する
func (d *BinDiscretizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"edges": d.Edges,
	}
}

// String は離散化器の文字列表現を返す
func (d *BinDiscretizer) String() string {
	if !d.IsFitted() {
		return fmt.Sprintf("BinDiscretizer(edges=%v)", d.Edges)
	}
	return fmt.Sprintf("BinDiscretizer(edges=%v, n_bins=%d)", d.Edges, d.NBins)
}
