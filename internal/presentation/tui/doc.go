// Package tui formats batch reports for the terminal.
package tui
