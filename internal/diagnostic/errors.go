package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a failure category.
type Code string

const (
	CodeDependencyUnavailable      Code = "dependency_unavailable"
	CodeUnclassifiableDistribution Code = "unclassifiable_distribution"
	CodeUnclassifiableRestriction  Code = "unclassifiable_restriction"
	CodeDuplicateNormalizedName    Code = "duplicate_normalized_name"
	CodeMissingLookupEdge          Code = "missing_lookup_edge"
	CodeBrokenRelationship         Code = "broken_relationship"
	CodeDuplicateDropped           Code = "duplicate_dropped"
	CodeEmit                       Code = "emit"
	CodeResolved                   Code = "resolved"
)

// Sentinel errors for known conditions.
var (
	// ErrDependencyUnavailable indicates the metadata source cannot be reached.
	ErrDependencyUnavailable = errors.New("metadata source unavailable")

	// ErrUnclassifiableDistribution indicates a risk exposure shape outside the known set.
	ErrUnclassifiableDistribution = errors.New("unclassifiable distribution")

	// ErrUnclassifiableRestriction indicates restriction flags that exclude every population.
	ErrUnclassifiableRestriction = errors.New("unclassifiable restriction")

	// ErrDuplicateNormalizedName indicates two entities of a kind normalize to one name.
	ErrDuplicateNormalizedName = errors.New("duplicate normalized name")

	// ErrMissingLookupEdge indicates an age missing from the age-group table.
	ErrMissingLookupEdge = errors.New("missing lookup edge")

	// ErrBrokenRelationship indicates a relationship id with no matching entity,
	// or a hierarchy that disagrees with itself.
	ErrBrokenRelationship = errors.New("broken relationship")

	// ErrEmit indicates a resolved graph that cannot be rendered.
	ErrEmit = errors.New("emit failed")
)

var sentinels = map[Code]error{
	CodeDependencyUnavailable:      ErrDependencyUnavailable,
	CodeUnclassifiableDistribution: ErrUnclassifiableDistribution,
	CodeUnclassifiableRestriction:  ErrUnclassifiableRestriction,
	CodeDuplicateNormalizedName:    ErrDuplicateNormalizedName,
	CodeMissingLookupEdge:          ErrMissingLookupEdge,
	CodeBrokenRelationship:         ErrBrokenRelationship,
	CodeEmit:                       ErrEmit,
}

// Error is a fatal condition tied to a single entity.
type Error struct {
	// Code is the failure category.
	Code Code
	// Kind is the entity kind being processed (e.g. "cause").
	Kind string
	// ID is the raw numeric id of the entity, zero when it has none.
	ID int
	// Field names the offending field (optional).
	Field string
	// Message is the specific description.
	Message string
	// Row is the raw record involved (optional), dumped in debug mode.
	Row any
	// Cause is an underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Code))

	if e.Kind != "" {
		b.WriteString(" [")
		b.WriteString(e.Kind)

		if e.ID != 0 {
			fmt.Fprintf(&b, " %d", e.ID)
		}

		b.WriteString("]")
	}

	if e.Field != "" {
		b.WriteString(" ")
		b.WriteString(e.Field)
	}

	b.WriteString(": ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the category sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	var errs []error
	if s, ok := sentinels[e.Code]; ok {
		errs = append(errs, s)
	}

	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

// Newf creates an Error for an entity.
func Newf(code Code, kind string, id int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Kind:    kind,
		ID:      id,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithField sets the offending field and returns e.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithRow attaches the raw record and returns e.
func (e *Error) WithRow(row any) *Error {
	e.Row = row
	return e
}

// Unavailable wraps err as a dependency failure.
func Unavailable(err error, msg string) error {
	return &Error{Code: CodeDependencyUnavailable, Message: msg, Cause: err}
}

// RowOf returns the raw record attached to the first Error in err's chain.
func RowOf(err error) (any, bool) {
	var de *Error
	if errors.As(err, &de) && de.Row != nil {
		return de.Row, true
	}

	return nil, false
}

// IsResolution reports whether err belongs to a resolution category, as
// opposed to source availability or emission.
func IsResolution(err error) bool {
	return errors.Is(err, ErrUnclassifiableDistribution) ||
		errors.Is(err, ErrUnclassifiableRestriction) ||
		errors.Is(err, ErrDuplicateNormalizedName) ||
		errors.Is(err, ErrMissingLookupEdge) ||
		errors.Is(err, ErrBrokenRelationship)
}
