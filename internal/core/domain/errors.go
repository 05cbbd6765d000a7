// Package domain holds the core data model of the audit runner.
package domain

import "go.trai.ch/zerr"

var (
	// ErrNoEnginesConfigured is returned when the configuration declares no engines.
	ErrNoEnginesConfigured = zerr.New("no engines configured")

	// ErrUnknownEngine is returned when a requested engine is not registered.
	ErrUnknownEngine = zerr.New("unknown engine")

	// ErrConfigNotFound is returned when the configuration file is absent.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrAuditFailed is returned by the app layer when at least one engine
	// reported an error-severity diagnostic or failed outright.
	ErrAuditFailed = zerr.New("audit failed")
)
