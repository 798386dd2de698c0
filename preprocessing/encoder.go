package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlhousing/core/model"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// OneHotEncoder はカテゴリ列を0/1のダミー変数行列に変換する
// カテゴリは学習時に辞書順でソートされ、DropFirstが有効な場合は
// 先頭のカテゴリが基準カテゴリとして列から除外される
// （pandasのget_dummies(drop_first=True)と同じ挙動）
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories は学習時に観測したカテゴリ（辞書順）
	Categories []string

	// DropFirst は先頭カテゴリの列を除外するかどうか
	DropFirst bool
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// パラメータ:
//   - dropFirst: 先頭カテゴリの列を除外するかどうか
//
// 使用例:
//
//	enc := preprocessing.NewOneHotEncoder(true)
//	dummies, err := enc.FitTransform(categories)
//	names, err := enc.FeatureNames("ocean_proximity")
func NewOneHotEncoder(dropFirst bool) *OneHotEncoder {
	return &OneHotEncoder{
		DropFirst: dropFirst,
	}
}

// Fit はデータから一意なカテゴリを学習する
//
// パラメータ:
//   - values: カテゴリ値の列
//
// 戻り値:
//   - error: データが空、またはDropFirst有効時にカテゴリが1種類以下の場合
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	seen := make(map[string]struct{})
	for _, v := range values {
		seen[v] = struct{}{}
	}

	cats := make([]string, 0, len(seen))
	for v := range seen {
		cats = append(cats, v)
	}
	sort.Strings(cats)

	// DropFirst有効でカテゴリが1種類だと出力が0列になってしまう
	if e.DropFirst && len(cats) < 2 {
		return errors.NewValueError("OneHotEncoder.Fit",
			fmt.Sprintf("need at least 2 categories when drop_first is enabled (got %d)", len(cats)))
	}

	e.Categories = cats
	e.SetFitted()
	return nil
}

// Transform はカテゴリ値をダミー変数行列に変換する
// 学習時に観測しなかったカテゴリはエラー
//
// パラメータ:
//   - values: 変換するカテゴリ値の列
//
// 戻り値:
//   - mat.Matrix: n_samples × n_output のダミー変数行列
//   - error: エラーが発生した場合
func (e *OneHotEncoder) Transform(values []string) (mat.Matrix, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	offset := 0
	if e.DropFirst {
		offset = 1
	}
	nOut := len(e.Categories) - offset

	index := make(map[string]int, len(e.Categories))
	for pos, cat := range e.Categories {
		index[cat] = pos
	}

	result := mat.NewDense(len(values), nOut, nil)
	for i, v := range values {
		pos, ok := index[v]
		if !ok {
			return nil, errors.NewValueError("OneHotEncoder.Transform",
				fmt.Sprintf("unknown category %q at row %d (known: %v)", v, i, e.Categories))
		}
		// 基準カテゴリ（pos < offset）は全列0の行になる
		if pos >= offset {
			result.Set(i, pos-offset, 1.0)
		}
	}

	return result, nil
}

// FitTransform はカテゴリを学習し、同じデータを変換する
func (e *OneHotEncoder) FitTransform(values []string) (mat.Matrix, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// FeatureNames は出力列の名前を "prefix_カテゴリ名" 形式で返す
// DropFirstが有効な場合、基準カテゴリの名前は含まれない
//
// パラメータ:
//   - prefix: 出力列名の接頭辞（元の列名）
//
// 戻り値:
//   - []string: 出力列の名前
//   - error: 未学習の場合
func (e *OneHotEncoder) FeatureNames(prefix string) ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "FeatureNames")
	}

	offset := 0
	if e.DropFirst {
		offset = 1
	}

	names := make([]string, 0, len(e.Categories)-offset)
	for _, cat := range e.Categories[offset:] {
		names = append(names, fmt.Sprintf("%s_%s", prefix, cat))
	}
	return names, nil
}

// GetParams はエンコーダのパラメータを取得する
func (e *OneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"drop_first": e.DropFirst,
	}
}

// String はエンコーダの文字列表現を返す
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return fmt.Sprintf("OneHotEncoder(drop_first=%t)", e.DropFirst)
	}
	return fmt.Sprintf("OneHotEncoder(drop_first=%t, categories=%v)", e.DropFirst, e.Categories)
}
