/*
Package domain contains the core records of the plume experiment pipeline.

It defines what a simulation run produces and how runs are grouped, independent of
how results are computed, stored or drawn. This package is kept free of I/O,
following the same ports-and-adapters split as the rest of the module.

# Key Entities

  - RunResult: an immutable set of 1-D profiles sharing one pressure coordinate,
    plus a flat string-keyed provenance map.
  - Batch: an insertion-ordered mapping from run label to RunResult.
  - Report: per-run outcomes (succeeded, failed, skipped) with error kind and duration.
  - ErrorKind: the operator-facing classification of pipeline errors.
*/
package domain
