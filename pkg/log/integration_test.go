package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

// TestLoggerInterface tests the Logger interface implementation
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	// Test Debug logging
	testLogger.Debug("debug message", "key1", "value1", "number", 42)

	// Test Info logging
	testLogger.Info("info message", "operation", "test")

	// Test Warn logging
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")

	// Test Error logging
	testErr := fmt.Errorf("test error")
	testLogger.Error("error message", "error", testErr)

	// Verify output was captured
	output := buffer.String()
	if output == "" {
		t.Fatal("Expected log output, got empty string")
	}

	// Verify all log levels were captured
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	// Verify structured fields
	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	// Create contextual logger
	contextLogger := testLogger.With(
		ModelNameKey, "SimpleImputer",
		ComponentKey, "preprocessing",
		RunIDKey, "run-001",
	)

	// Log with context
	contextLogger.Info("contextual message", OperationKey, OperationFit)

	// Verify context fields are included
	if !testLogger.ContainsField(ModelNameKey, "SimpleImputer") {
		t.Error("Model name context not found")
	}

	if !testLogger.ContainsField(ComponentKey, "preprocessing") {
		t.Error("Component context not found")
	}

	if !testLogger.ContainsField(OperationKey, OperationFit) {
		t.Error("Operation field not found")
	}
}

// TestLoggerEnabled tests the Enabled method
func TestLoggerEnabled(t *testing.T) {
	// Create logger with Info level
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	// Test level checking
	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}

	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Error level")
	}

	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	// Test that disabled logs don't appear
	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}

	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

// TestPipelineAttributeKeys tests pipeline-specific attribute keys
func TestPipelineAttributeKeys(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	// Simulate split operation logging
	testLogger.Info("Split completed",
		OperationKey, OperationSplit,
		PhaseKey, PhasePreprocessing,
		SamplesKey, 16512,
		FeaturesKey, 9,
		RandomSeedKey, 42,
		TestSizeKey, 0.2,
	)

	// Verify attributes
	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	entry := entries[0]

	// Check pipeline-specific fields
	expectedFields := map[string]interface{}{
		OperationKey:  OperationSplit,
		PhaseKey:      PhasePreprocessing,
		SamplesKey:    16512.0, // JSON numbers are float64
		FeaturesKey:   9.0,
		RandomSeedKey: 42.0,
		TestSizeKey:   0.2,
	}

	for key, expectedValue := range expectedFields {
		if actualValue, exists := entry[key]; !exists {
			t.Errorf("Expected field %s not found", key)
		} else if actualValue != expectedValue {
			t.Errorf("Field %s: expected %v, got %v", key, expectedValue, actualValue)
		}
	}
}

// TestLoggerProviderIntegration tests the LoggerProvider interface
func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	// Test GetLogger
	logger := provider.GetLogger()
	logger.Info("provider test message")

	// Test GetLoggerWithName
	namedLogger := provider.GetLoggerWithName("dataset")
	namedLogger.Info("named logger message")

	// Verify output
	lines := buffer.String()
	if lines == "" {
		t.Fatal("Expected log output from provider")
	}

	if !strings.Contains(lines, "provider test message") {
		t.Error("Provider test message not found")
	}

	if !strings.Contains(lines, "named logger message") {
		t.Error("Named logger message not found")
	}

	if !strings.Contains(lines, "dataset") {
		t.Error("Component name not found in named logger output")
	}
}

// TestConcurrentLogging tests thread safety of logging
func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	numGoroutines := 3
	messagesPerGoroutine := 3

	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer func() { done <- true }()

			for j := 0; j < messagesPerGoroutine; j++ {
				testLogger.Info(fmt.Sprintf("goroutine %d message %d", id, j),
					"goroutine_id", id,
					"message_id", j,
				)
			}
		}(i)
	}

	// Wait for all goroutines to complete
	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}

	expectedEntries := numGoroutines * messagesPerGoroutine
	if len(entries) != expectedEntries {
		t.Errorf("Expected %d log entries, got %d", expectedEntries, len(entries))
	}
}

// TestZerologProviderOutput tests the zerolog-backed provider end to end
func TestZerologProviderOutput(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithWriter(&buf, LevelDebug)

	logger := provider.GetLoggerWithName("preprocessing")
	logger.Info("Imputer fitted",
		ModelNameKey, "SimpleImputer",
		OperationKey, OperationFit,
		SamplesKey, 100,
	)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse zerolog output: %v", err)
	}

	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "Imputer fitted" {
		t.Errorf("message = %v, want 'Imputer fitted'", entry["message"])
	}
	if entry[ComponentKey] != "preprocessing" {
		t.Errorf("%s = %v, want preprocessing", ComponentKey, entry[ComponentKey])
	}
	if entry[ModelNameKey] != "SimpleImputer" {
		t.Errorf("%s = %v, want SimpleImputer", ModelNameKey, entry[ModelNameKey])
	}
	if entry[SamplesKey] != 100.0 {
		t.Errorf("%s = %v, want 100", SamplesKey, entry[SamplesKey])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected timestamp field in zerolog output")
	}
}

// TestZerologProviderStacktrace tests that errors with stacks log a stacktrace field
func TestZerologProviderStacktrace(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithWriter(&buf, LevelDebug)

	err := errors.WithStack(errors.New("column missing"))
	provider.GetLogger().Error("Load failed", "error", err)

	var entry map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &entry); jsonErr != nil {
		t.Fatalf("Failed to parse zerolog output: %v", jsonErr)
	}

	if entry["error"] != "column missing" {
		t.Errorf("error = %v, want 'column missing'", entry["error"])
	}
	st, ok := entry[StacktraceKey].(string)
	if !ok || st == "" {
		t.Error("Expected non-empty stacktrace field for error with stack")
	}
}

// TestZerologProviderLevel tests level filtering in the zerolog provider
func TestZerologProviderLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithWriter(&buf, LevelWarn)

	logger := provider.GetLogger()
	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("Info message should be filtered at Warn level")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("Warn message should pass at Warn level")
	}

	ctx := context.Background()
	if logger.Enabled(ctx, LevelInfo) {
		t.Error("Enabled(LevelInfo) should be false at Warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("Enabled(LevelError) should be true at Warn level")
	}
}

// TestFileProvider tests log file creation including parent directories
func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "mlhousing.log")

	provider, closeFn, err := NewFileProvider(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewFileProvider() error = %v", err)
	}

	provider.GetLogger().Info("run started", RunIDKey, "abc")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "run started") {
		t.Error("Log file does not contain expected message")
	}

	// Appending to an existing file must preserve prior records
	provider2, closeFn2, err := NewFileProvider(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewFileProvider() second open error = %v", err)
	}
	provider2.GetLogger().Info("second run")
	if err := closeFn2(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to re-read log file: %v", err)
	}
	if !strings.Contains(string(data), "run started") || !strings.Contains(string(data), "second run") {
		t.Error("Log file should contain records from both runs")
	}
}

// TestToLogLevel tests configuration level name parsing
func TestToLogLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	}
	for name, want := range cases {
		if got := ToLogLevel(name); got != want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", name, got, want)
		}
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("ToLogLevel should panic on unknown level name")
		}
	}()
	ToLogLevel("verbose")
}

// TestGlobalProviderDefault tests the lazily installed default provider
func TestGlobalProviderDefault(t *testing.T) {
	// Install a known provider, then restore the previous behavior by
	// replacing it again at the end of the test.
	prev := Provider()
	defer SetProvider(prev)

	testProvider, _ := NewTestLoggerProvider(LevelDebug)
	SetProvider(testProvider)

	GetLoggerWithName("pipeline").Info("via global accessor")

	if !testProvider.GetTestLogger().ContainsMessage("via global accessor") {
		t.Error("Global accessor did not route to installed provider")
	}
	if !testProvider.GetTestLogger().ContainsField(ComponentKey, "pipeline") {
		t.Error("Named logger did not attach component key")
	}
}
