// Package log defines standard attribute keys for preprocessing operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in mlhousing. Using these standard keys enables better
// log analysis and debugging of preprocessing runs.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Performance and Configuration
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the transformer, run, and operation being performed.
const (
	// ModelNameKey identifies the type of transformer or estimator.
	// Examples: "SimpleImputer", "OneHotEncoder", "BinDiscretizer"
	ModelNameKey = "model.name"

	// RunIDKey provides a unique identifier for one preprocessing run.
	// Every record emitted during a run carries the same ID so that runs
	// appending to a shared log file can be told apart.
	RunIDKey = "run.id"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "load", "fit", "transform", "fit_transform", "split", "write"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "preprocessing", "dataset", "pipeline"
	ComponentKey = "ml.component"

	// PhaseKey indicates the partition or lifecycle phase.
	// Examples: "preprocessing", "training", "testing"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"

	// ColumnKey names the column a record refers to.
	// Examples: "median_income", "total_bedrooms"
	ColumnKey = "data.column"
)

// Performance and Configuration
// These attributes capture timing and run configuration for reproducibility.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RandomSeedKey records the random seed for reproducibility.
	// Essential for debugging and ensuring reproducible splits.
	RandomSeedKey = "config.random_seed"

	// TestSizeKey records the configured test partition fraction.
	TestSizeKey = "config.test_size"
)

// File Context
// These attributes describe files read or written by the pipeline.
const (
	// PathKey contains an absolute file path.
	PathKey = "file.path"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated when an error field carries a stack.
	// The typed errors in pkg/errors attach their own "type" field
	// through their zerolog marshalers.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard pipeline operations
	OperationLoad      = "load"
	OperationFit       = "fit"
	OperationTransform = "transform"
	OperationSplit     = "split"
	OperationWrite     = "write"

	// Standard phases
	PhasePreprocessing = "preprocessing"
	PhaseTraining      = "training"
	PhaseTesting       = "testing"
)
