// Package pipeline はCalifornia住宅価格テーブルの前処理パイプラインを提供する。
//
// 生のCSVを読み込み、所得カテゴリで層化した学習/テスト分割を行い、
// 欠損値補完・比率特徴量の導出・カテゴリ列のone-hot符号化を経て、
// 学習用の特徴量・ラベルCSVを書き出す。
package pipeline

import (
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/mlhousing/dataset"
	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// Config はパイプライン全体の設定を保持する。
// ゼロ値は使わず、DefaultConfig()かLoadConfig()で生成する
type Config struct {
	Split       SplitConfig       `yaml:"split"`
	Columns     ColumnConfig      `yaml:"columns"`
	Logging     LoggingConfig     `yaml:"logging"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Artifacts   ArtifactsConfig   `yaml:"artifacts"`
}

// SplitConfig は学習/テスト分割の設定を保持する
type SplitConfig struct {
	// TestSize はテスト集合に割り当てる行の比率 (0, 1)
	TestSize float64 `yaml:"test_size"`
	// RandomSeed は分割シャッフルの乱数シード
	RandomSeed int `yaml:"random_seed"`
	// IncomeBinEdges は所得カテゴリの境界値。昇順で、区間は右閉
	// (lo, hi] として解釈される。末尾は +Inf が置ける (YAMLでは .inf)
	IncomeBinEdges []float64 `yaml:"income_bin_edges"`
}

// ColumnConfig は役割を持つ列の名前を保持する
type ColumnConfig struct {
	// Income は層化に使う所得列
	Income string `yaml:"income"`
	// Categorical はone-hot符号化するカテゴリ列
	Categorical string `yaml:"categorical"`
	// Target はラベルとして抜き出す目的変数列
	Target string `yaml:"target"`
}

// LoggingConfig はログ出力の設定を保持する
type LoggingConfig struct {
	// Path はログファイルのパス。親ディレクトリは実行時に作成される
	Path string `yaml:"path"`
	// Level は "debug", "info", "warn", "error" のいずれか
	Level string `yaml:"level"`
}

// DiagnosticsConfig は分割品質の診断出力の設定を保持する
type DiagnosticsConfig struct {
	// PlotPath が空でなければ、層化/無作為分割の構成比比較の
	// 棒グラフをPNGとして書き出す
	PlotPath string `yaml:"plot_path"`
}

// ArtifactsConfig は学習済み変換器の保存先を保持する
type ArtifactsConfig struct {
	// ImputerPath が空でなければ、学習データで適合させた
	// SimpleImputerをgob形式で保存する
	ImputerPath string `yaml:"imputer_path"`
}

// DefaultConfig は既定値のConfigを返す
func DefaultConfig() *Config {
	return &Config{
		Split: SplitConfig{
			TestSize:       0.2,
			RandomSeed:     42,
			IncomeBinEdges: []float64{0, 1.5, 3.0, 4.5, 6.0, math.Inf(1)},
		},
		Columns: ColumnConfig{
			Income:      dataset.ColMedianIncome,
			Categorical: dataset.ColOceanProximity,
			Target:      dataset.ColMedianHouseValue,
		},
		Logging: LoggingConfig{
			Path:  filepath.Join("logs", "mlhousing.log"),
			Level: "info",
		},
	}
}

// LoadConfig はYAMLファイルを既定値の上に読み込む。
// ファイルに無い項目は既定値のまま残る
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を検証する
func (c *Config) Validate() error {
	if c.Split.TestSize <= 0 || c.Split.TestSize >= 1 {
		return errors.NewValidationError("split.test_size", "must be in (0, 1)", c.Split.TestSize)
	}
	if len(c.Split.IncomeBinEdges) < 2 {
		return errors.NewValidationError("split.income_bin_edges", "need at least 2 edges", len(c.Split.IncomeBinEdges))
	}
	for i := 1; i < len(c.Split.IncomeBinEdges); i++ {
		if c.Split.IncomeBinEdges[i] <= c.Split.IncomeBinEdges[i-1] {
			return errors.NewValidationError("split.income_bin_edges", "edges must be strictly ascending", c.Split.IncomeBinEdges)
		}
	}

	if c.Columns.Income == "" {
		return errors.NewValidationError("columns.income", "must not be empty", c.Columns.Income)
	}
	if c.Columns.Categorical == "" {
		return errors.NewValidationError("columns.categorical", "must not be empty", c.Columns.Categorical)
	}
	if c.Columns.Target == "" {
		return errors.NewValidationError("columns.target", "must not be empty", c.Columns.Target)
	}

	if c.Logging.Path == "" {
		return errors.NewValidationError("logging.path", "must not be empty", c.Logging.Path)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("logging.level", "must be one of debug, info, warn, error", c.Logging.Level)
	}

	return nil
}
