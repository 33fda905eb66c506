// Package compare assembles persisted runs into a dataset for cross-run comparison.
//
// Runs are loaded independently: a missing or corrupt artifact is reported and
// left out without affecting the others. Fields that are not stored, such as
// temp_diff, are derived from stored profiles each time they are requested.
package compare
