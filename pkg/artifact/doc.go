// Package artifact encodes run results as self-describing JSON documents.
//
// A document carries the pressure coordinate with its name and units, every
// profile, and the run's provenance attributes, so it can be reloaded without
// any other context. NaN values are written as null and infinities as the
// strings "+Inf" and "-Inf"; finite values use the shortest representation that
// reads back to the same float64.
package artifact
