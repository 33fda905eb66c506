// Package cli implements the commands of the plume tool on top of the library
// packages. Each command is a method on App so it can be driven from tests
// without a process boundary.
package cli
