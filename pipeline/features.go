package pipeline

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlhousing/dataset"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
	"github.com/YuminosukeSato/mlhousing/preprocessing"
)

// binIncome は所得列を序数カテゴリに離散化したincome_cat列を追加する。
// カテゴリは層化分割にのみ使い、特徴量生成の前に落とす
func binIncome(df dataframe.DataFrame, incomeCol string, edges []float64) (dataframe.DataFrame, error) {
	if err := dataset.CheckColumns(df, incomeCol); err != nil {
		return dataframe.DataFrame{}, err
	}

	disc := preprocessing.NewBinDiscretizer(edges)
	labels, err := disc.FitTransform(df.Col(incomeCol).Float())
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	out := df.Mutate(series.New(labels, series.Int, dataset.ColIncomeCat))
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.WithStack(out.Err)
	}
	return out, nil
}

// extractTarget は目的変数列を1列のラベルフレームとして抜き出し、
// 残りの列を説明変数フレームとして返す
func extractTarget(df dataframe.DataFrame, target string) (dataframe.DataFrame, dataframe.DataFrame, error) {
	var empty dataframe.DataFrame

	if err := dataset.CheckColumns(df, target); err != nil {
		return empty, empty, err
	}

	labels := dataframe.New(df.Col(target).Copy())
	if labels.Err != nil {
		return empty, empty, errors.WithStack(labels.Err)
	}

	predictors := df.Drop(target)
	if predictors.Err != nil {
		return empty, empty, errors.WithStack(predictors.Err)
	}
	return predictors, labels, nil
}

// imputeNumeric は数値フレームの欠損値を中央値で補完する。
// fitがtrueなら統計量をこのフレームで適合させ、falseなら
// imputerが保持する適合済みの統計量をそのまま適用する
func imputeNumeric(df dataframe.DataFrame, imp *preprocessing.SimpleImputer, fit bool) (dataframe.DataFrame, error) {
	m, names, err := dataset.NumericMatrix(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	var imputed mat.Matrix
	if fit {
		imputed, err = imp.FitTransform(m)
	} else {
		imputed, err = imp.Transform(m)
	}
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	return dataset.FromMatrix(imputed, names)
}

// deriveRatioFeatures は補完済みの数値フレームに比率特徴量を追加する。
//
//	rooms_per_household      = total_rooms / households
//	bedrooms_per_room        = total_bedrooms / total_rooms
//	population_per_household = population / households
//
// 除算はガードしない。分母が0の行はInfやNaNになるが、行は落とさず
// NumericalInstabilityErrorを警告として報告して通す
func deriveRatioFeatures(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := dataset.CheckColumns(df,
		dataset.ColTotalRooms, dataset.ColTotalBedrooms,
		dataset.ColHouseholds, dataset.ColPopulation); err != nil {
		return dataframe.DataFrame{}, err
	}

	rooms := df.Col(dataset.ColTotalRooms).Float()
	bedrooms := df.Col(dataset.ColTotalBedrooms).Float()
	households := df.Col(dataset.ColHouseholds).Float()
	population := df.Col(dataset.ColPopulation).Float()

	n := df.Nrow()
	roomsPerHousehold := make([]float64, n)
	bedroomsPerRoom := make([]float64, n)
	populationPerHousehold := make([]float64, n)
	for i := 0; i < n; i++ {
		roomsPerHousehold[i] = rooms[i] / households[i]
		bedroomsPerRoom[i] = bedrooms[i] / rooms[i]
		populationPerHousehold[i] = population[i] / households[i]
	}

	out := df
	for _, ratio := range []struct {
		name   string
		values []float64
	}{
		{dataset.ColRoomsPerHousehold, roomsPerHousehold},
		{dataset.ColBedroomsPerRoom, bedroomsPerRoom},
		{dataset.ColPopulationPerHousehold, populationPerHousehold},
	} {
		if err := errors.CheckNumericalStability(ratio.name, ratio.values); err != nil {
			errors.Warn(err)
		}
		out = out.Mutate(series.New(ratio.values, series.Float, ratio.name))
		if out.Err != nil {
			return dataframe.DataFrame{}, errors.WithStack(out.Err)
		}
	}
	return out, nil
}

// encodeCategorical はカテゴリ列をdrop-first方式でone-hot符号化した
// フレームを返す。カテゴリはソート順で、先頭カテゴリが基準(全列0)になる
func encodeCategorical(df dataframe.DataFrame, col string) (dataframe.DataFrame, error) {
	if err := dataset.CheckColumns(df, col); err != nil {
		return dataframe.DataFrame{}, err
	}

	enc := preprocessing.NewOneHotEncoder(true)
	encoded, err := enc.FitTransform(df.Col(col).Records())
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	names, err := enc.FeatureNames(col)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return dataset.FromMatrix(encoded, names)
}

// engineerFeatures は1パーティション分の特徴量テーブルとラベルを構築する。
//
// 目的変数を抜き出した後、カテゴリ列を除く数値列を中央値補完し、
// 比率特徴量を導出し、カテゴリ列のone-hot列を結合する。
// fitImputerは学習側でtrue、テスト側でfalseを渡す。テスト側は学習側で
// 適合させた統計量で補完され、テストデータの情報は統計量に混ざらない。
// one-hotの符号化はパーティションごとに適合させる
func engineerFeatures(df dataframe.DataFrame, cols ColumnConfig, imp *preprocessing.SimpleImputer, fitImputer bool) (dataframe.DataFrame, dataframe.DataFrame, error) {
	var empty dataframe.DataFrame

	predictors, labels, err := extractTarget(df, cols.Target)
	if err != nil {
		return empty, empty, err
	}

	numeric := predictors.Drop(cols.Categorical)
	if numeric.Err != nil {
		return empty, empty, errors.WithStack(numeric.Err)
	}

	imputed, err := imputeNumeric(numeric, imp, fitImputer)
	if err != nil {
		return empty, empty, err
	}

	derived, err := deriveRatioFeatures(imputed)
	if err != nil {
		return empty, empty, err
	}

	encoded, err := encodeCategorical(predictors, cols.Categorical)
	if err != nil {
		return empty, empty, err
	}

	features := derived.CBind(encoded)
	if features.Err != nil {
		return empty, empty, errors.WithStack(features.Err)
	}
	return features, labels, nil
}
