package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース。
// 訓練データでFitした変換器を、そのままテストデータのTransformに
// 使い回すことで、学習時の統計量を再計算せずに適用できる。
type Transformer interface {
	// Fit は変換に必要な統計量を学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
