package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldError_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "definitions[0].examples[1].source: source is a required field",
		FieldError{Field: "definitions[0].examples[1].source", Message: "source is a required field"}.String())
	assert.Equal(t, "expected object", FieldError{Message: "expected object"}.String())
}

func TestValidationError_ListsEveryField(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "headword", Message: "headword is a required field"},
		{Field: "rank", Message: "rank must be greater than 0"},
	})

	assert.Equal(t, "validation: headword: headword is a required field; rank: rank must be greater than 0", err.Error())
	assert.Len(t, err.Errors, 2)
}

func TestValidationError_UnwrapsToErrValidation(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("create word: %w", NewValidationErrors([]FieldError{{Message: "invalid JSON"}}))

	assert.ErrorIs(t, wrapped, ErrValidation)
	var verr *ValidationError
	assert.ErrorAs(t, wrapped, &verr)
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrValidation, ErrConflict}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
