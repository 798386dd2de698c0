package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"github.com/YuminosukeSato/mlhousing/core/model"
	"github.com/YuminosukeSato/mlhousing/dataset"
	"github.com/YuminosukeSato/mlhousing/metrics"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
	"github.com/YuminosukeSato/mlhousing/pkg/log"
	"github.com/YuminosukeSato/mlhousing/preprocessing"
	"github.com/YuminosukeSato/mlhousing/sklearn/model_selection"
)

// Run は既定設定で前処理パイプラインを1回実行する。
//
// inputDir/inputFile のCSVを読み込み、所得カテゴリで層化した80/20分割を
// 行い、学習側で適合させた変換を両パーティションに適用したうえで、
// outputDir に4つのCSV (特徴量とラベル x 学習/テスト) を書き出す
func Run(inputDir, inputFile, outputDir string) error {
	return RunWithConfig(inputDir, inputFile, outputDir, DefaultConfig())
}

// RunWithConfig は設定を指定して前処理パイプラインを実行する
func RunWithConfig(inputDir, inputFile, outputDir string, cfg *Config) (err error) {
	defer errors.Recover(&err, "pipeline.Run")

	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, closeLog, err := log.NewFileProvider(cfg.Logging.Path, log.ToLogLevel(cfg.Logging.Level))
	if err != nil {
		return err
	}

	// 実行中だけファイルプロバイダを全体に設定する。終了時はファイルを
	// 閉じる前に元のプロバイダへ戻す。戻さないと、以降のライブラリ呼び
	// 出しのログが閉じたファイルへ流れてしまう
	prev := log.Provider()
	log.SetProvider(provider)
	defer func() {
		log.SetProvider(prev)
		_ = closeLog()
	}()

	runID := uuid.NewString()
	logger := log.GetLoggerWithName("pipeline").With(log.RunIDKey, runID)

	// ライブラリ内の警告(非有限値・暗黙の型変換など)もログに流す。
	// プロバイダは呼び出し時に解決されるので、実行終了後の警告は
	// 復元されたプロバイダに届く
	errors.SetWarningHandler(func(w error) {
		log.GetLoggerWithName("pipeline").Warn("Preprocessing warning", "warning", w)
	})

	start := time.Now()
	logger.Info("Preprocessing started",
		"input_dir", inputDir,
		"input_file", inputFile,
		"output_dir", outputDir,
		log.PhaseKey, log.PhasePreprocessing,
		log.TestSizeKey, cfg.Split.TestSize,
		log.RandomSeedKey, cfg.Split.RandomSeed,
	)

	df, err := dataset.LoadCSV(inputDir, inputFile)
	if err != nil {
		logger.Error("Failed to load input table", "error", err, log.OperationKey, log.OperationLoad)
		return err
	}

	binned, err := binIncome(df, cfg.Columns.Income, cfg.Split.IncomeBinEdges)
	if err != nil {
		logger.Error("Failed to derive income categories", "error", err, log.ColumnKey, cfg.Columns.Income)
		return err
	}

	trainRaw, testRaw, err := stratifiedSplit(binned, cfg, logger)
	if err != nil {
		logger.Error("Failed to split table", "error", err, log.OperationKey, log.OperationSplit)
		return err
	}

	// income_cat は層化にだけ使い、特徴量には残さない
	train := trainRaw.Drop(dataset.ColIncomeCat)
	if train.Err != nil {
		return errors.WithStack(train.Err)
	}
	test := testRaw.Drop(dataset.ColIncomeCat)
	if test.Err != nil {
		return errors.WithStack(test.Err)
	}

	imp := preprocessing.NewSimpleImputer()

	trainX, trainY, err := engineerFeatures(train, cfg.Columns, imp, true)
	if err != nil {
		logger.Error("Failed to build train features", "error", err, log.PhaseKey, log.PhaseTraining)
		return err
	}
	logger.Debug("Imputer fitted on train partition",
		log.OperationKey, log.OperationFit,
		log.ModelNameKey, "SimpleImputer",
		log.PhaseKey, log.PhaseTraining,
		log.FeaturesKey, imp.NFeatures,
	)

	testX, testY, err := engineerFeatures(test, cfg.Columns, imp, false)
	if err != nil {
		logger.Error("Failed to build test features", "error", err, log.PhaseKey, log.PhaseTesting)
		return err
	}
	logger.Debug("Train-fitted imputer applied to test partition",
		log.OperationKey, log.OperationTransform,
		log.ModelNameKey, "SimpleImputer",
		log.PhaseKey, log.PhaseTesting,
		log.SamplesKey, testX.Nrow(),
	)

	if cfg.Artifacts.ImputerPath != "" {
		if err := saveImputer(imp, cfg.Artifacts.ImputerPath, logger); err != nil {
			logger.Error("Failed to save imputer artifact", "error", err, log.PathKey, cfg.Artifacts.ImputerPath)
			return err
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", outputDir)
	}
	paths := NewOutputPaths(outputDir, inputFile)
	if err := writeOutputs(paths, trainX, trainY, testX, testY); err != nil {
		logger.Error("Failed to write output tables", "error", err, log.OperationKey, log.OperationWrite)
		return err
	}

	// 元の実装は絶対パスを表示するために作業ディレクトリを一時変更
	// していた。ここでは解決したパスを記録するだけでディレクトリ状態に
	// 触れない
	logger.Info("Output tables written",
		log.OperationKey, log.OperationWrite,
		"train_data", absPath(paths.TrainData),
		"train_label", absPath(paths.TrainLabel),
		"test_data", absPath(paths.TestData),
		"test_label", absPath(paths.TestLabel),
	)
	logger.Info("Preprocessing finished",
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.SamplesKey, df.Nrow(),
		"train_rows", trainX.Nrow(),
		"test_rows", testX.Nrow(),
		"train_features", trainX.Ncol(),
	)
	return nil
}

// stratifiedSplit はincome_cat列で層化した学習/テスト分割を行う。
// 併せて、単純無作為分割とのカテゴリ構成比の比較を診断として記録する
func stratifiedSplit(df dataframe.DataFrame, cfg *Config, logger log.Logger) (dataframe.DataFrame, dataframe.DataFrame, error) {
	var empty dataframe.DataFrame

	labels, err := df.Col(dataset.ColIncomeCat).Int()
	if err != nil {
		return empty, empty, errors.NewValueError("stratifiedSplit", err.Error())
	}

	splitter := model_selection.NewStratifiedShuffleSplit(1, cfg.Split.TestSize, cfg.Split.RandomSeed)
	results, err := splitter.Split(labels)
	if err != nil {
		return empty, empty, err
	}
	res := results[0]

	logger.Info("Stratified split completed",
		log.OperationKey, log.OperationSplit,
		"train_rows", len(res.TrainIndices),
		"test_rows", len(res.TestIndices),
	)

	compareSplitProportions(labels, res, cfg, logger)

	train := df.Subset(res.TrainIndices)
	if train.Err != nil {
		return empty, empty, errors.WithStack(train.Err)
	}
	test := df.Subset(res.TestIndices)
	if test.Err != nil {
		return empty, empty, errors.WithStack(test.Err)
	}
	return train, test, nil
}

// compareSplitProportions は層化分割が所得カテゴリの構成比をどの程度
// 保存するかを単純無作為分割と比較して記録する。結果は観測にのみ使い、
// 分割そのものには影響しない。失敗しても実行は継続する
func compareSplitProportions(labels []int, strat model_selection.SplitResult, cfg *Config, logger log.Logger) {
	random, err := model_selection.TrainTestSplit(len(labels), cfg.Split.TestSize, cfg.Split.RandomSeed)
	if err != nil {
		logger.Warn("Random split for diagnostics failed", "error", err)
		return
	}

	rows, err := metrics.CompareSplits(labels, strat.TestIndices, random.TestIndices)
	if err != nil {
		logger.Warn("Split proportion comparison failed", "error", err)
		return
	}

	for _, row := range rows {
		logger.Debug("Income category proportions",
			"category", row.Category,
			"overall", row.Overall,
			"stratified", row.Stratified,
			"random", row.Random,
			"strat_error_pct", row.StratErrorPct,
			"rand_error_pct", row.RandErrorPct,
		)
	}

	if cfg.Diagnostics.PlotPath != "" {
		if err := plotSplitComparison(rows, cfg.Diagnostics.PlotPath); err != nil {
			logger.Warn("Failed to render split comparison plot", "error", err)
			return
		}
		logger.Info("Split comparison plot written", log.PathKey, cfg.Diagnostics.PlotPath)
	}
}

// absPath はログ表示用にパスを絶対パスへ解決する。解決できない場合は
// 元のパスをそのまま返す
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// saveImputer は学習側で適合させたimputerをgob形式で保存する
func saveImputer(imp *preprocessing.SimpleImputer, path string, logger log.Logger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create artifact directory %s", dir)
		}
	}
	if err := model.SaveModel(imp, path); err != nil {
		return err
	}
	logger.Info("Imputer artifact saved", log.PathKey, path, log.ModelNameKey, "SimpleImputer")
	return nil
}
