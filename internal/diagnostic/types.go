package diagnostic

import (
	"fmt"
	"strings"
)

// Diagnostics holds the non-fatal findings of a run. Fatal conditions are
// returned as *Error instead.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// Kind is the entity kind this relates to (if any).
	Kind string
	// Entity is the normalized entity name this relates to (if any).
	Entity string
}

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
)

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, message, kind, entity string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Kind:     kind,
		Entity:   entity,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, message, kind, entity string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Kind:     kind,
		Entity:   entity,
	})
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, warnings first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Warnings)+len(d.Infos))
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Kind != "" {
		prefix = append(prefix, "["+d.Kind+"]")
	}

	if d.Entity != "" {
		prefix = append(prefix, d.Entity)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
