// Package model_selection provides dataset splitting utilities compatible
// with scikit-learn's model_selection module.
package model_selection

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/mlhousing/pkg/errors"
)

// SplitResult holds the row indices of one train/test partition.
// Both slices are sorted in ascending order so that partitioned tables
// preserve the original row order.
type SplitResult struct {
	TrainIndices []int
	TestIndices  []int
}

// TrainTestSplit partitions nSamples row indices into a random train/test
// split without stratification. The shuffle is seeded deterministically,
// so the same (nSamples, testSize, randomSeed) always yields the same
// partition.
//
// The test partition receives ceil(testSize * nSamples) rows, matching
// scikit-learn's train_test_split.
func TrainTestSplit(nSamples int, testSize float64, randomSeed int) (SplitResult, error) {
	if nSamples <= 0 {
		return SplitResult{}, errors.Wrap(errors.ErrEmptyData, "model_selection.TrainTestSplit")
	}
	if testSize <= 0 || testSize >= 1 {
		return SplitResult{}, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	nTest := int(math.Ceil(testSize * float64(nSamples)))

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}

	r := rand.New(rand.NewPCG(uint64(randomSeed), uint64(randomSeed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	test := make([]int, nTest)
	copy(test, indices[:nTest])
	train := make([]int, nSamples-nTest)
	copy(train, indices[nTest:])

	sort.Ints(test)
	sort.Ints(train)

	return SplitResult{TrainIndices: train, TestIndices: test}, nil
}

// StratifiedShuffleSplit generates randomized train/test partitions that
// preserve the class distribution of a label column, compatible with
// scikit-learn's StratifiedShuffleSplit.
type StratifiedShuffleSplit struct {
	// NSplits is the number of re-shuffled partitions to generate
	NSplits int

	// TestSize is the fraction of rows assigned to the test partition
	TestSize float64

	// RandomState seeds the shuffle for reproducibility
	RandomState int
}

// NewStratifiedShuffleSplit creates a new splitter.
func NewStratifiedShuffleSplit(nSplits int, testSize float64, randomState int) *StratifiedShuffleSplit {
	if nSplits < 1 {
		nSplits = 1
	}
	return &StratifiedShuffleSplit{
		NSplits:     nSplits,
		TestSize:    testSize,
		RandomState: randomState,
	}
}

// GetNSplits returns the number of splits.
func (s *StratifiedShuffleSplit) GetNSplits() int {
	return s.NSplits
}

// Split partitions the rows of a label column into NSplits train/test
// splits. Each class appears in the test partition in (as close as
// possible) the same proportion as in the full column: per-class test
// quotas are the largest-remainder apportionment of ceil(TestSize * n)
// across classes. Classes are processed in ascending label order so the
// result is deterministic for a given seed. A rare class may receive a
// quota of zero when the test partition has fewer rows than there are
// classes.
//
// Returns an error when TestSize is out of range or when any class has
// fewer than 2 members.
func (s *StratifiedShuffleSplit) Split(labels []int) ([]SplitResult, error) {
	const op = "StratifiedShuffleSplit.Split"

	n := len(labels)
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	if s.TestSize <= 0 || s.TestSize >= 1 {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", s.TestSize)
	}

	// Group row indices by class, in ascending label order
	byClass := make(map[int][]int)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}
	classes := make([]int, 0, len(byClass))
	for label := range byClass {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	for _, label := range classes {
		if len(byClass[label]) < 2 {
			return nil, errors.NewValueError(op,
				fmt.Sprintf("the least populated class (%d) has only %d member; minimum is 2", label, len(byClass[label])))
		}
	}

	nTest := int(math.Ceil(s.TestSize * float64(n)))
	quotas := testQuotas(classes, byClass, n, nTest)

	r := rand.New(rand.NewPCG(uint64(s.RandomState), uint64(s.RandomState)))

	results := make([]SplitResult, s.NSplits)
	for split := 0; split < s.NSplits; split++ {
		var test, train []int
		for ci, label := range classes {
			indices := make([]int, len(byClass[label]))
			copy(indices, byClass[label])
			r.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})

			test = append(test, indices[:quotas[ci]]...)
			train = append(train, indices[quotas[ci]:]...)
		}

		sort.Ints(test)
		sort.Ints(train)
		results[split] = SplitResult{TrainIndices: train, TestIndices: test}
	}

	return results, nil
}

// testQuotas apportions nTest test rows across classes by largest
// remainder. Every class first receives floor(nTest * classSize / n)
// rows; the leftover rows go to the classes with the largest fractional
// remainders, ties resolved in ascending label order.
func testQuotas(classes []int, byClass map[int][]int, n, nTest int) []int {
	quotas := make([]int, len(classes))
	remainders := make([]float64, len(classes))

	assigned := 0
	for ci, label := range classes {
		exact := float64(nTest) * float64(len(byClass[label])) / float64(n)
		quotas[ci] = int(math.Floor(exact))
		remainders[ci] = exact - float64(quotas[ci])
		assigned += quotas[ci]
	}

	for assigned < nTest {
		best := -1
		for ci := range classes {
			if remainders[ci] < 0 {
				continue
			}
			if best == -1 || remainders[ci] > remainders[best] {
				best = ci
			}
		}
		quotas[best]++
		remainders[best] = -1
		assigned++
	}

	return quotas
}
