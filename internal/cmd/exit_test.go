package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"gbd-mapping-generator/internal/diagnostic"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"explicit", NewExitError(errors.New("boom"), ExitResolutionError), ExitResolutionError},
		{"unavailable", diagnostic.Unavailable(errors.New("refused"), "connecting"), ExitDependencyUnavailable},
		{"duplicate", fmt.Errorf("covariate: %w", diagnostic.ErrDuplicateNormalizedName), ExitResolutionError},
		{"broken link", fmt.Errorf("cause 302: %w", diagnostic.ErrBrokenRelationship), ExitResolutionError},
		{"emit", fmt.Errorf("cause.go: %w", diagnostic.ErrEmit), ExitResolutionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Resolution Error", ExitCodeName(ExitResolutionError))
	assert.Equal(t, "Dependency Unavailable", ExitCodeName(ExitDependencyUnavailable))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}

func TestExitError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("x: %w", diagnostic.ErrMissingLookupEdge)
	err := NewExitError(inner, ExitResolutionError)

	assert.ErrorIs(t, err, diagnostic.ErrMissingLookupEdge)
	assert.Equal(t, inner.Error(), err.Error())
}
