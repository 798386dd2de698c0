package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/mlhousing/core/parallel"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// OutputPaths は4つの出力CSVのパスを保持する
type OutputPaths struct {
	TrainData  string // 学習用特徴量
	TrainLabel string // 学習用ラベル
	TestData   string // テスト用特徴量
	TestLabel  string // テスト用ラベル
}

// NewOutputPaths は入力ファイル名から出力パスを導出する。
// ベース名は入力ファイル名の最初のドットまでの部分
// (例: "housing.csv" -> "housing", "housing.tgz.csv" -> "housing")
func NewOutputPaths(outputDir, inputFile string) OutputPaths {
	base := strings.SplitN(inputFile, ".", 2)[0]
	return OutputPaths{
		TrainData:  filepath.Join(outputDir, base+"_train.csv"),
		TrainLabel: filepath.Join(outputDir, base+"_label.csv"),
		TestData:   filepath.Join(outputDir, base+"_testdata.csv"),
		TestLabel:  filepath.Join(outputDir, base+"_testlabel.csv"),
	}
}

// writeFrame はデータフレームをヘッダ付き・インデックス列なしのCSVとして
// 書き出す。浮動小数点値は最短の往復可能表現で出力する
// (gotaのWriteCSVは%fで6桁に丸めるためここでは使わない)
func writeFrame(path string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return errors.WithStack(df.Err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(df.Names()); err != nil {
		return errors.Wrapf(err, "failed to write header to %s", path)
	}

	cols := make([]series.Series, df.Ncol())
	for j, name := range df.Names() {
		cols[j] = df.Col(name)
	}

	row := make([]string, df.Ncol())
	for i := 0; i < df.Nrow(); i++ {
		for j := range cols {
			row[j] = formatCell(cols[j], i)
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "failed to write row %d to %s", i, path)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", path)
	}
	return nil
}

// formatCell は1セルをCSV用の文字列にする
func formatCell(s series.Series, i int) string {
	switch s.Type() {
	case series.Float:
		return strconv.FormatFloat(s.Elem(i).Float(), 'g', -1, 64)
	default:
		return s.Elem(i).String()
	}
}

// writeOutputs は学習/テストの特徴量・ラベルを4つのCSVに書き出す。
// 4つのテーブルは独立したファイルなので並列に書く
func writeOutputs(paths OutputPaths, train, trainLabel, test, testLabel dataframe.DataFrame) error {
	outs := []struct {
		path string
		df   dataframe.DataFrame
	}{
		{paths.TrainData, train},
		{paths.TrainLabel, trainLabel},
		{paths.TestData, test},
		{paths.TestLabel, testLabel},
	}

	errs := make([]error, len(outs))
	parallel.Parallelize(len(outs), func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = writeFrame(outs[i].path, outs[i].df)
		}
	})

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
