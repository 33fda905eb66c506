package domain

import (
	"fmt"
	"slices"
	"time"
)

// Batch maps run labels to results, preserving the order runs were added in.
type Batch struct {
	labels  []string
	results map[string]*RunResult
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{results: make(map[string]*RunResult)}
}

// Add stores result under label.
// Returns ErrDuplicateRun if the label already has a result.
func (b *Batch) Add(label string, result *RunResult) error {
	if label == "" {
		return fmt.Errorf("run label cannot be empty")
	}
	if result == nil {
		return fmt.Errorf("run %q: result cannot be nil", label)
	}
	if _, exists := b.results[label]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRun, label)
	}
	b.labels = append(b.labels, label)
	b.results[label] = result
	return nil
}

// Get returns the result stored under label.
func (b *Batch) Get(label string) (*RunResult, bool) {
	r, ok := b.results[label]
	return r, ok
}

// Labels returns the run labels in insertion order.
func (b *Batch) Labels() []string {
	return slices.Clone(b.labels)
}

// Len returns the number of results in the batch.
func (b *Batch) Len() int {
	return len(b.labels)
}

// RunStatus describes how a run ended within a batch or comparison.
type RunStatus string

const (
	StatusSucceeded RunStatus = "succeeded"
	StatusFailed    RunStatus = "failed"
	StatusSkipped   RunStatus = "skipped"
)

// RunOutcome records what happened to one run label.
type RunOutcome struct {
	Label    string
	Status   RunStatus
	Kind     ErrorKind
	Err      error
	Duration time.Duration

	// Location is where the artifact lives (file path, redis key, ...), if known.
	Location string
}

// Report collects the outcomes of a batch or an assembly pass, in order.
type Report struct {
	Outcomes []RunOutcome
}

// Succeeded records a successful run.
func (r *Report) Succeeded(label string, d time.Duration, location string) {
	r.Outcomes = append(r.Outcomes, RunOutcome{
		Label:    label,
		Status:   StatusSucceeded,
		Duration: d,
		Location: location,
	})
}

// Failed records a failed run, classifying err.
func (r *Report) Failed(label string, d time.Duration, err error) {
	r.Outcomes = append(r.Outcomes, RunOutcome{
		Label:    label,
		Status:   StatusFailed,
		Kind:     KindOf(err),
		Err:      err,
		Duration: d,
	})
}

// Skipped records a run that was not executed because its artifact already exists.
func (r *Report) Skipped(label string, location string) {
	r.Outcomes = append(r.Outcomes, RunOutcome{
		Label:    label,
		Status:   StatusSkipped,
		Location: location,
	})
}

// Failures returns the failed outcomes only.
func (r *Report) Failures() []RunOutcome {
	var failed []RunOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Outcome returns the outcome recorded for label.
func (r *Report) Outcome(label string) (RunOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Label == label {
			return o, true
		}
	}
	return RunOutcome{}, false
}

// OK reports whether no run failed.
func (r *Report) OK() bool {
	return len(r.Failures()) == 0
}
