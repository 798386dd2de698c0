// Package mlhousing provides a one-shot preprocessing pipeline for the
// California housing census table, turning the raw CSV into model-ready
// train/test feature and label tables.
//
// The pipeline mirrors the classic scikit-learn housing workflow: the
// train/test split is stratified on binned median income so that both
// partitions preserve the income distribution of the full table, missing
// values are imputed with medians fitted on the training partition only,
// ratio features (rooms per household, bedrooms per room, population per
// household) are derived, and the ocean_proximity category is one-hot
// encoded with the first category dropped as baseline.
//
// # Quick Start
//
// Run the pipeline with defaults (80/20 split, seed 42):
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/YuminosukeSato/mlhousing/pipeline"
//	)
//
//	func main() {
//	    if err := pipeline.Run("datasets/housing", "housing.csv", "out"); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Four CSVs are written into the output directory, named after the input
// file: housing_train.csv, housing_label.csv, housing_testdata.csv and
// housing_testlabel.csv. A structured JSON log of the run is appended to
// logs/mlhousing.log.
//
// # Packages
//
//   - pipeline: orchestration, configuration and output writing
//   - dataset: CSV loading and gota/gonum bridging
//   - preprocessing: SimpleImputer, BinDiscretizer, OneHotEncoder
//   - sklearn/model_selection: stratified and random train/test splitting
//   - metrics: split quality diagnostics (category proportion comparison)
//   - core/model: transformer state management and gob persistence
//   - pkg/errors: error types and warnings with stack traces
//   - pkg/log: structured logging interfaces backed by zerolog
//
// # scikit-learn Compatibility
//
// The transformers follow scikit-learn's estimator conventions: Fit learns
// statistics, Transform applies them, and using Transform before Fit
// returns a NotFittedError. A transformer fitted on the training partition
// can be applied to the test partition, persisted with core/model.SaveModel
// and restored with core/model.LoadModel.
package mlhousing
