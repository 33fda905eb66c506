// Package http serves stored run results as a read-only JSON API.
package http
