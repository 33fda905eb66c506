/*
Package ports defines the driven ports (interfaces) of the plume pipeline.

These interfaces decouple the orchestration core from the integrator, from where
configuration lives and from how results are persisted.

# Key Interfaces

  - Integrator: the external numerical plume model.
  - ConfigSource: resolves a run label to its configuration.
  - Executor: runs one configuration and stamps the result with provenance.
  - ResultStore: persists results keyed by run label (file, memory, redis, sqlite).
  - RunRecorder: observes run outcomes (metrics).
*/
package ports
