package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "handly/internal/domain/errors"
)

type refreshBody struct {
	RefreshToken string `json:"refresh_token" validate:"required,notblank"`
	Hint         string `json:"hint" validate:"omitempty,max=4"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&refreshBody{RefreshToken: "t"}))

	err := v.Validate(&refreshBody{Hint: "too long"})

	var violations domainerrors.ValidationErrors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 2)
	assert.Equal(t, "refresh_token", violations[0].Field)
	assert.Equal(t, domainerrors.CategoryMissing, violations[0].Category)
	assert.Equal(t, "hint", violations[1].Field)
	assert.Equal(t, "MAX", violations[1].Code)
}

func TestValidator_BlankToken(t *testing.T) {
	err := New().Validate(&refreshBody{RefreshToken: " \t "})

	var violations domainerrors.ValidationErrors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 1)
	assert.Equal(t, "NOTBLANK", violations[0].Code)
	assert.Equal(t, domainerrors.CategoryFormat, violations[0].Category)
}

func TestValidator_NotAStruct(t *testing.T) {
	err := New().Validate("plain string")

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
