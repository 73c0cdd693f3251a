package apitest

import (
	"errors"
	"sync"

	"github.com/qxf2/cars-api-test-harness/framework"
)

// ErrTrackerFinalized is returned by RecordSuccess/RecordFailure after Finalize
// has been called.
var ErrTrackerFinalized = errors.New("result tracker has been finalized")

// Tally is a snapshot of the pass/fail bookkeeping for one test run. The invariant
// Total == Passed + len(Failures) always holds for tallies produced by a Tracker.
type Tally struct {
	Total    int
	Passed   int
	Failures []string
}

// FailCount returns the number of recorded failures.
func (t Tally) FailCount() int { return t.Total - t.Passed }

// PassPercentage returns the percentage of recorded outcomes that passed, or zero
// if nothing was recorded.
func (t Tally) PassPercentage() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Passed) / float64(t.Total) * 100
}

// Tracker accumulates pass/fail outcomes for the lifetime of one test run. It is
// safe for concurrent use; each record operation updates the counters atomically
// with respect to other records and snapshots.
//
// A Tracker is normally always-active for the life of the process. Finalize may
// optionally be called to reject any further records, which guards against stray
// bookkeeping after the summary has been reported.
type Tracker struct {
	logger    framework.Logger
	total     int
	passed    int
	failures  []string
	finalized bool
	lock      sync.Mutex
}

// NewTracker creates a Tracker that logs each recorded outcome to the given logger.
// A nil logger discards the log output.
func NewTracker(logger framework.Logger) *Tracker {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Tracker{logger: logger}
}

// RecordSuccess records one passing outcome.
func (tr *Tracker) RecordSuccess(message string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.finalized {
		return ErrTrackerFinalized
	}
	tr.total++
	tr.passed++
	tr.logger.Printf("PASS: %s", message)
	return nil
}

// RecordFailure records one failing outcome. Failure messages are retained in the
// order they were recorded.
func (tr *Tracker) RecordFailure(message string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.finalized {
		return ErrTrackerFinalized
	}
	tr.total++
	tr.failures = append(tr.failures, message)
	tr.logger.Printf("FAIL: %s", message)
	return nil
}

// RecordOutcome records a success or a failure depending on the flag.
func (tr *Tracker) RecordOutcome(passed bool, successMessage, failureMessage string) error {
	if passed {
		return tr.RecordSuccess(successMessage)
	}
	return tr.RecordFailure(failureMessage)
}

// Summary returns a snapshot of the current counters. Mutating the returned value
// has no effect on the tracker.
func (tr *Tracker) Summary() Tally {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	return tr.snapshotLocked()
}

// Finalize takes a final snapshot and puts the tracker into a state where any
// further records are rejected with ErrTrackerFinalized.
func (tr *Tracker) Finalize() Tally {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.finalized = true
	return tr.snapshotLocked()
}

func (tr *Tracker) snapshotLocked() Tally {
	return Tally{
		Total:    tr.total,
		Passed:   tr.passed,
		Failures: append([]string(nil), tr.failures...),
	}
}
