// Package metrics は分割品質の診断指標を提供する。
//
// 層化抽出が所得カテゴリの構成比をどの程度保存しているかを、
// 無作為抽出と比較して定量化する。
package metrics

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// CategoryProportions は離散ラベル列の各カテゴリ構成比を計算する
func CategoryProportions(labels []int) (map[int]float64, error) {
	// 入力検証
	n := len(labels)
	if n == 0 {
		return nil, errors.NewValueError("CategoryProportions", "empty labels")
	}

	counts := make(map[int]int)
	for _, label := range labels {
		counts[label]++
	}

	props := make(map[int]float64, len(counts))
	for label, count := range counts {
		props[label] = float64(count) / float64(n)
	}
	return props, nil
}

// ProportionErrorPct は基準構成比に対する分割後構成比の相対誤差（%）を計算する
//
// 誤差は符号付きで、分割側がカテゴリを過剰に含む場合は正になる。
// 基準構成比が0のとき誤差は定義できないため、UndefinedMetricWarningを
// 発行してNaNを返す
func ProportionErrorPct(overall, split float64) float64 {
	if overall == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(
			"ProportionErrorPct", "overall proportion is zero", math.NaN()))
		return math.NaN()
	}
	return 100*split/overall - 100
}

// SplitComparison は1カテゴリ分の構成比比較の結果を保持する
type SplitComparison struct {
	Category      int
	Overall       float64 // 全データにおける構成比
	Stratified    float64 // 層化テスト集合における構成比
	Random        float64 // 無作為テスト集合における構成比
	StratErrorPct float64 // 層化抽出の相対誤差（%）
	RandErrorPct  float64 // 無作為抽出の相対誤差（%）
}

// CompareSplits は層化分割と無作為分割のテスト集合について、
// 全データに対するカテゴリ構成比の保存度を比較する
//
// stratTestとrandTestはlabelsへの行インデックスとして解釈される。
// 結果はカテゴリ昇順で返す
func CompareSplits(labels []int, stratTest, randTest []int) ([]SplitComparison, error) {
	overall, err := CategoryProportions(labels)
	if err != nil {
		return nil, err
	}

	stratLabels, err := labelsAt(labels, stratTest, "CompareSplits")
	if err != nil {
		return nil, err
	}
	randLabels, err := labelsAt(labels, randTest, "CompareSplits")
	if err != nil {
		return nil, err
	}

	strat, err := CategoryProportions(stratLabels)
	if err != nil {
		return nil, err
	}
	random, err := CategoryProportions(randLabels)
	if err != nil {
		return nil, err
	}

	categories := make([]int, 0, len(overall))
	for label := range overall {
		categories = append(categories, label)
	}
	sort.Ints(categories)

	rows := make([]SplitComparison, 0, len(categories))
	for _, label := range categories {
		row := SplitComparison{
			Category:   label,
			Overall:    overall[label],
			Stratified: strat[label],
			Random:     random[label],
		}
		row.StratErrorPct = ProportionErrorPct(row.Overall, row.Stratified)
		row.RandErrorPct = ProportionErrorPct(row.Overall, row.Random)
		rows = append(rows, row)
	}
	return rows, nil
}

// labelsAt はインデックス列が指すラベルを取り出す
func labelsAt(labels []int, indices []int, op string) ([]int, error) {
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(labels) {
			return nil, errors.NewValueError(op, "split index out of range")
		}
		out = append(out, labels[idx])
	}
	return out, nil
}
