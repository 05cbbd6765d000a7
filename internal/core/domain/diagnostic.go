package domain

import (
	"sort"
	"strings"
)

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError marks a diagnostic that fails the audited tree.
	SeverityError Severity = "error"
	// SeverityWarning marks a non-fatal finding.
	SeverityWarning Severity = "warning"
	// SeverityInformation marks an informational note.
	SeverityInformation Severity = "information"
)

// NormalizeSeverity maps arbitrary tool severities onto the known set,
// defaulting to warning for anything unrecognized.
func NormalizeSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "err", "fatal":
		return SeverityError
	case "information", "info", "note", "hint":
		return SeverityInformation
	default:
		return SeverityWarning
	}
}

// Diagnostic is one finding reported by an engine, normalized from the
// tool's native format by its adapter.
type Diagnostic struct {
	Tool     string         `json:"tool"`
	Severity Severity       `json:"severity"`
	Path     string         `json:"path"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`
	Code     string         `json:"code,omitempty"`
	Message  string         `json:"message"`
	Raw      map[string]any `json:"raw,omitempty"`
}

// SortDiagnostics orders diagnostics canonically by (path, line, column).
// The ordering is load-bearing: cache-equality checks and serialized output
// both depend on it.
func SortDiagnostics(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Path != ds[j].Path {
			return ds[i].Path < ds[j].Path
		}
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		return ds[i].Column < ds[j].Column
	})
}

// CloneDiagnostics returns an independent copy of the slice. Raw maps are
// copied shallowly; adapters hand them over and never mutate them afterwards.
func CloneDiagnostics(ds []Diagnostic) []Diagnostic {
	if ds == nil {
		return nil
	}
	cloned := make([]Diagnostic, len(ds))
	copy(cloned, ds)
	return cloned
}

// ToolSummary aggregates diagnostic counts for one run.
type ToolSummary struct {
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Information int `json:"information"`
	Total       int `json:"total"`
}

// Summarize counts diagnostics by severity.
func Summarize(ds []Diagnostic) ToolSummary {
	var s ToolSummary
	for _, d := range ds {
		switch d.Severity {
		case SeverityError:
			s.Errors++
		case SeverityInformation:
			s.Information++
		default:
			s.Warnings++
		}
	}
	s.Total = len(ds)
	return s
}
